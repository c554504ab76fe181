package fbref

const wagesPage = `<!DOCTYPE html>
<html><head><title>2015-2016 Premier League Wages | FBref.com</title></head>
<body>
<div id="all_player_wages">
<!--
<table id="player_wages">
<thead><tr><th>Player</th><th>Squad</th><th>Weekly Wages</th></tr></thead>
<tbody><tr><td>Someone</td><td>Arsenal</td><td>£ 100,000</td></tr></tbody>
</table>
-->
</div>
<div id="all_squad_wages">
<!--
<table id="squad_wages">
<thead>
<tr class="over_header"><th colspan="2"></th><th colspan="2">Wages</th></tr>
<tr><th>Rk</th><th>Squad</th><th>Weekly Wages</th><th>Annual Wages</th></tr>
</thead>
<tbody>
<tr><th>1</th><td><a href="/en/squads/x">Manchester Utd</a></td><td>£ 4,190,000</td><td>£ 217,880,000 (€ 300,000,000, $330,000,000)</td></tr>
<tr><th>2</th><td>Chelsea</td><td>£ 3,900,000</td><td>£ 203.1m</td></tr>
<tr class="thead"><th>Rk</th><th>Squad</th><th>Weekly Wages</th><th>Annual Wages</th></tr>
<tr><th>3</th><td>  </td><td>£ 1</td><td>£ 52</td></tr>
<tr><th>4</th><td>Watford</td><td>£ 900,000</td><td>n/a</td></tr>
<tr><th>5</th><td>Leicester City</td><td>£ 900,000</td><td>£ 48,100,000</td></tr>
</tbody>
</table>
-->
</div>
</body></html>`
