package config

// PathsConfig locates pipeline inputs and outputs.
type PathsConfig struct {
	Workbook      string `env:"WORKBOOK_PATH" envDefault:"PL-financials.xlsx"`
	Stacked       string `env:"STACKED_CSV" envDefault:"pl_financials_stacked.csv"`
	AnalysisReady string `env:"ANALYSIS_CSV" envDefault:"pl_financials_analysis_ready.csv"`
	Regression    string `env:"REGRESSION_OUTPUT" envDefault:"regression_outputs.txt"`
	Efficiency    string `env:"EFFICIENCY_CSV" envDefault:"pl_financials_efficiency.csv"`
	WagesDir      string `env:"WAGES_DIR" envDefault:"data/raw/fbref_wages"`
	ArtifactsDir  string `env:"ARTIFACTS_DIR" envDefault:"data/artifacts"`
}
