package spreadsheet

// Supplier master headers (furnizori).
const (
	HeaderCode         = "cod"
	HeaderName         = "denumire"
	HeaderUnit         = "um"
	HeaderTypeLabel    = "den_tip"
	HeaderSupplierName = "furnizor"
	HeaderMinQty       = "cantit minima"
	HeaderMaxQty       = "cantit maxima"
)

// Ledger headers (saga) beyond the shared ones.
const (
	HeaderStock = "stoc"
)

// Floor inventory headers (sedona).
const (
	HeaderFloorCode         = "Cod intern"
	HeaderDepartment        = "Departament"
	HeaderProduct           = "Produs"
	HeaderBarcode           = "Cod de bare"
	HeaderPLU               = "PLU"
	HeaderFloorUnit         = "U.M."
	HeaderVATRate           = "Cota TVA"
	HeaderCurrentStock      = "Stoc curent"
	HeaderLastPurchasePrice = "Ultimul pret de achizitie fara TVA"
	HeaderPurchaseValue     = "Valoare achizitie fara TVA"
	HeaderMarkup            = "Adaos"
	HeaderMarkupPercent     = "Adaos %"
	HeaderPriceExclVAT      = "Pret fara TVA"
	HeaderPriceInclVAT      = "Pret cu TVA"
)

// Result headers not shared with the inputs.
const (
	HeaderLedgerStock     = "stoc_saga"
	HeaderFloorStock      = "stoc_sedona"
	HeaderQuantityToOrder = "aprovizionat"
	HeaderError           = "Eroare"
)

var supplierHeaders = []string{
	HeaderCode, HeaderName, HeaderUnit, HeaderTypeLabel,
	HeaderSupplierName, HeaderMinQty, HeaderMaxQty,
}

var ledgerHeaders = []string{
	HeaderCode, HeaderName, HeaderUnit, HeaderTypeLabel, HeaderStock,
}

var floorHeaders = []string{
	HeaderFloorCode, HeaderDepartment, HeaderProduct, HeaderBarcode, HeaderPLU,
	HeaderFloorUnit, HeaderVATRate, HeaderCurrentStock, HeaderLastPurchasePrice,
	HeaderPurchaseValue, HeaderMarkup, HeaderMarkupPercent, HeaderPriceExclVAT,
	HeaderPriceInclVAT,
}

// missingSupplierHeaders are the Fara_furnizori columns; the Aprovizionare
// sheet appends HeaderQuantityToOrder.
var missingSupplierHeaders = []string{
	HeaderCode, HeaderName, HeaderUnit, HeaderTypeLabel,
	HeaderLedgerStock, HeaderFloorStock, HeaderStock, HeaderLastPurchasePrice,
	HeaderSupplierName, HeaderMinQty, HeaderMaxQty,
}

var reorderHeaders = append(append([]string{}, missingSupplierHeaders...), HeaderQuantityToOrder)

var errorHeaders = []string{HeaderError}
