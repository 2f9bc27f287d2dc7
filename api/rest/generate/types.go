package generate

// Request represents the request body for image generation
type Request struct {
	Prompt         string  `json:"prompt"`
	Style          string  `json:"style"`
	NegativePrompt string  `json:"negativePrompt"`
	NumberOfImages int     `json:"numberOfImages"`
	AspectRatio    string  `json:"aspectRatio"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Creativity     float64 `json:"creativity"`
}

// Response carries the generated image URLs in request order
type Response struct {
	ImageURLs []string `json:"imageUrls"`
}

// ErrorResponse is the uniform failure shape for this endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// RateLimitedResponse is returned with 429 when the daily quota is exhausted
type RateLimitedResponse struct {
	Error          string `json:"error"`
	TimeUntilReset int64  `json:"timeUntilReset"`
	NextResetTime  string `json:"nextResetTime"`
}
