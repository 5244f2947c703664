package config

// Application constants
const (
	AppName    = "restock"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. RESTOCK_LOGGING_LEVEL.
	EnvPrefix = "RESTOCK"

	// Default input and output file names, as used by the shop's exports.
	DefaultSuppliersFile = "furnizori.xlsx"
	DefaultResultFile    = "aprovizionare.xlsx"
	DefaultLogFile       = "logs/restock.log"

	// Result workbook sheet names.
	SheetReorders         = "Aprovizionare"
	SheetMissingSuppliers = "Fara_furnizori"
	SheetErrors           = "Erori"
)

// configFileLocations are searched in order when no config path is given.
var configFileLocations = []string{
	"restock.yaml",
	"configs/restock.yaml",
}
