package dto

// DocumentParams are the optional overrides of the document endpoints.
// Date uses the day.month.year format of the printed documents.
type DocumentParams struct {
	NumShares *int   `form:"num_shares"`
	Date      string `form:"date"` // dd.mm.yyyy
}

// DocumentResult is a rendered PDF ready to be served.
type DocumentResult struct {
	Filename string
	Content  []byte
}
