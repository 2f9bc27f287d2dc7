package provider

import "encoding/base64"

// generated images are delivered as webp
const dataURLPrefix = "data:image/webp;base64,"

// Normalize converts heterogeneous provider outputs into a uniform list of
// displayable image URLs. Hosted URLs pass through unchanged; inline bytes
// become self-contained data: URLs. A single batch may mix both kinds.
func Normalize(outputs []Output) ([]string, error) {
	urls := make([]string, 0, len(outputs))

	for _, output := range outputs {
		switch output.Kind {
		case OutputURL:
			urls = append(urls, output.URL)
		case OutputBytes:
			if len(output.Bytes) == 0 {
				return nil, ErrEmptyStream
			}

			urls = append(urls, dataURLPrefix+base64.StdEncoding.EncodeToString(output.Bytes))
		}
	}

	if len(urls) == 0 {
		return nil, ErrNoImages
	}

	return urls, nil
}
