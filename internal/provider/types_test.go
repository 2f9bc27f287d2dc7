package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhancePrompt(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "no style",
			req:  Request{Prompt: "a red fox"},
			want: "a red fox",
		},
		{
			name: "realistic is the baseline",
			req:  Request{Prompt: "a red fox", Style: "realistic"},
			want: "a red fox",
		},
		{
			name: "named style becomes a suffix",
			req:  Request{Prompt: "a red fox", Style: "watercolor"},
			want: "a red fox, watercolor style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enhancePrompt(tt.req))
		})
	}
}

func TestResolveDimensions(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "explicit dimensions win",
			req:        Request{Width: 640, Height: 480, AspectRatio: "portrait"},
			wantWidth:  640,
			wantHeight: 480,
		},
		{
			name:       "square",
			req:        Request{AspectRatio: "square"},
			wantWidth:  1024,
			wantHeight: 1024,
		},
		{
			name:       "widescreen",
			req:        Request{AspectRatio: "widescreen"},
			wantWidth:  1344,
			wantHeight: 768,
		},
		{
			name:       "4:3",
			req:        Request{AspectRatio: "4:3"},
			wantWidth:  1152,
			wantHeight: 896,
		},
		{
			name:       "3:2",
			req:        Request{AspectRatio: "3:2"},
			wantWidth:  1216,
			wantHeight: 832,
		},
		{
			name:       "portrait",
			req:        Request{AspectRatio: "portrait"},
			wantWidth:  768,
			wantHeight: 1344,
		},
		{
			name:       "unknown ratio falls back to square",
			req:        Request{AspectRatio: "cinema"},
			wantWidth:  1024,
			wantHeight: 1024,
		},
		{
			name:       "partial explicit dimensions are ignored",
			req:        Request{Width: 640, AspectRatio: "portrait"},
			wantWidth:  768,
			wantHeight: 1344,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height := resolveDimensions(tt.req)
			assert.Equal(t, tt.wantWidth, width)
			assert.Equal(t, tt.wantHeight, height)
		})
	}
}

func TestResolveNumOutputs(t *testing.T) {
	assert.Equal(t, 1, resolveNumOutputs(Request{}))
	assert.Equal(t, 1, resolveNumOutputs(Request{NumOutputs: -2}))
	assert.Equal(t, 4, resolveNumOutputs(Request{NumOutputs: 4}))
}
