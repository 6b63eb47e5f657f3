package dto

type SeedResults struct {
	Created  int      `json:"created"`
	Existing int      `json:"existing"`
	Errors   []string `json:"errors"`
}

type SeedResponse struct {
	Message string      `json:"message"`
	Results SeedResults `json:"results"`
}
