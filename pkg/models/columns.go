package models

// Template column names used internally while rows are assembled. The
// destination rename table and allow-list are applied by the CSV writer
// immediately before output.
const (
	ColTitle           = "Title"
	ColHandle          = "URL handle"
	ColDescription     = "Description"
	ColVendor          = "Vendor"
	ColCategory        = "Product category"
	ColType            = "Type"
	ColTags            = "Tags"
	ColPublished       = "Published on online store"
	ColStatus          = "Status"
	ColOption1Name     = "Option1 name"
	ColOption1Value    = "Option1 value"
	ColOption2Name     = "Option2 name"
	ColOption2Value    = "Option2 value"
	ColOption3Name     = "Option3 name"
	ColOption3Value    = "Option3 value"
	ColSKU             = "SKU"
	ColGrams           = "Weight value (grams)"
	ColTracker         = "Inventory tracker"
	ColQuantity        = "Inventory quantity"
	ColPolicy          = "Continue selling when out of stock"
	ColFulfillment     = "Fulfillment service"
	ColPrice           = "Price"
	ColCompareAtPrice  = "Compare-at price"
	ColRequiresShip    = "Requires shipping"
	ColChargeTax       = "Charge tax"
	ColBarcode         = "Barcode"
	ColImageURL        = "Product image URL"
	ColImagePosition   = "Image position"
	ColImageAlt        = "Image alt text"
	ColVariantImageURL = "Variant image URL"
	ColGiftCard        = "Gift card"
	ColSEOTitle        = "SEO title"
	ColSEODescription  = "SEO description"
)

// TemplateColumns is the ordered column set every assembled row covers.
var TemplateColumns = []string{
	ColTitle,
	ColHandle,
	ColDescription,
	ColVendor,
	ColCategory,
	ColType,
	ColTags,
	ColPublished,
	ColStatus,
	ColOption1Name,
	ColOption1Value,
	ColOption2Name,
	ColOption2Value,
	ColOption3Name,
	ColOption3Value,
	ColSKU,
	ColGrams,
	ColTracker,
	ColQuantity,
	ColPolicy,
	ColFulfillment,
	ColPrice,
	ColCompareAtPrice,
	ColRequiresShip,
	ColChargeTax,
	ColBarcode,
	ColImageURL,
	ColImagePosition,
	ColImageAlt,
	ColVariantImageURL,
	ColGiftCard,
	ColSEOTitle,
	ColSEODescription,
}

// ColumnRename maps template column names to the names the destination
// import actually accepts.
var ColumnRename = map[string]string{
	ColHandle:          "Handle",
	ColDescription:     "Body (HTML)",
	ColPublished:       "Published",
	ColSKU:             "Variant SKU",
	ColPrice:           "Variant Price",
	ColCompareAtPrice:  "Variant Compare At Price",
	ColImageURL:        "Image Src",
	ColOption1Name:     "Option1 Name",
	ColOption1Value:    "Option1 Value",
	ColOption2Name:     "Option2 Name",
	ColOption2Value:    "Option2 Value",
	ColOption3Name:     "Option3 Name",
	ColOption3Value:    "Option3 Value",
	ColTracker:         "Variant Inventory Tracker",
	ColQuantity:        "Variant Inventory Qty",
	ColPolicy:          "Variant Inventory Policy",
	ColFulfillment:     "Variant Fulfillment Service",
	ColGrams:           "Variant Grams",
	ColRequiresShip:    "Variant Requires Shipping",
	ColChargeTax:       "Variant Taxable",
	ColBarcode:         "Variant Barcode",
	ColImagePosition:   "Image Position",
	ColImageAlt:        "Image Alt Text",
	ColVariantImageURL: "Variant Image",
	ColGiftCard:        "Gift Card",
	ColSEOTitle:        "SEO Title",
	ColSEODescription:  "SEO Description",
}

// acceptedColumns is the fixed allow-list of destination column names the
// import recognizes. Anything else is dropped from the written set.
var acceptedColumns = map[string]bool{
	"Handle": true, "Title": true, "Body (HTML)": true, "Vendor": true,
	"Product Category": true, "Product category": true, "Type": true,
	"Tags": true, "Published": true, "Status": true,
	"Option1 Name": true, "Option1 Value": true,
	"Option2 Name": true, "Option2 Value": true,
	"Option3 Name": true, "Option3 Value": true,
	"Variant SKU": true, "Variant Grams": true,
	"Variant Inventory Tracker": true, "Variant Inventory Qty": true,
	"Variant Inventory Policy": true, "Variant Fulfillment Service": true,
	"Variant Price": true, "Variant Compare At Price": true,
	"Variant Requires Shipping": true, "Variant Taxable": true,
	"Variant Barcode": true, "Image Src": true, "Image Position": true,
	"Image Alt Text": true, "Variant Image": true, "Gift Card": true,
	"SEO Title": true, "SEO Description": true,
}

// OutputColumns returns the destination header: template order with the
// rename table applied and unrecognized columns filtered out.
func OutputColumns() []string {
	out := make([]string, 0, len(TemplateColumns))
	for _, col := range TemplateColumns {
		name := col
		if renamed, ok := ColumnRename[col]; ok {
			name = renamed
		}
		if acceptedColumns[name] {
			out = append(out, name)
		}
	}
	return out
}
