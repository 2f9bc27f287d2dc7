package provider

// Request carries normalized generation parameters. Prompt validation happens
// at the HTTP boundary; adapters assume a non-empty prompt.
type Request struct {
	Prompt         string
	Style          string
	NegativePrompt string
	NumOutputs     int
	AspectRatio    string
	Width          int
	Height         int
	Creativity     float64
}

type OutputKind int

const (
	// a ready-to-use hosted image URL
	OutputURL OutputKind = iota

	// inline image bytes, fully drained from the provider's stream
	OutputBytes
)

// Output is one provider result: either a hosted URL or inline image bytes.
type Output struct {
	Kind  OutputKind
	URL   string
	Bytes []byte
}

// the baseline style; every other style is appended to the prompt as a suffix
const StyleRealistic = "realistic"

const (
	DefaultWidth  = 1024
	DefaultHeight = 1024
)

// named aspect ratios mapped to explicit flux-compatible dimensions
var aspectRatioDimensions = map[string][2]int{
	"square":     {1024, 1024},
	"widescreen": {1344, 768},
	"4:3":        {1152, 896},
	"3:2":        {1216, 832},
	"portrait":   {768, 1344},
}

// appends the style suffix unless the request uses the baseline style
func enhancePrompt(req Request) string {
	if req.Style == "" || req.Style == StyleRealistic {
		return req.Prompt
	}

	return req.Prompt + ", " + req.Style + " style"
}

// resolves output dimensions: explicit width/height win, then the named
// aspect ratio table, then the square default
func resolveDimensions(req Request) (int, int) {
	if req.Width > 0 && req.Height > 0 {
		return req.Width, req.Height
	}

	if dims, exists := aspectRatioDimensions[req.AspectRatio]; exists {
		return dims[0], dims[1]
	}

	return DefaultWidth, DefaultHeight
}

func resolveNumOutputs(req Request) int {
	if req.NumOutputs < 1 {
		return 1
	}

	return req.NumOutputs
}
