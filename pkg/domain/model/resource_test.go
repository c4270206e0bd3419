package model_test

import (
	"testing"

	"github.com/dostools/fdget/pkg/domain/model"
)

func TestParseResource(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantErr      bool
		wantFilename string
	}{
		{
			name:         "plain archive URL",
			raw:          "https://mirror.example.com/pub/dos/kernel.zip",
			wantFilename: "kernel.zip",
		},
		{
			name:         "percent-encoded filename is decoded",
			raw:          "https://mirror.example.com/pub/My%20Game.zip",
			wantFilename: "My Game.zip",
		},
		{
			name:         "query string does not join the filename",
			raw:          "https://mirror.example.com/pub/tool.zip?mirror=3",
			wantFilename: "tool.zip",
		},
		{
			name:    "relative URL",
			raw:     "pub/dos/kernel.zip",
			wantErr: true,
		},
		{
			name:    "no filename",
			raw:     "https://mirror.example.com/",
			wantErr: true,
		},
		{
			name:    "unparsable URL",
			raw:     "https://mirror.example.com/%zz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := model.ParseResource(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResource(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if res.Filename != tt.wantFilename {
				t.Errorf("Filename = %q, want %q", res.Filename, tt.wantFilename)
			}
		})
	}
}

func TestResource_Sibling(t *testing.T) {
	res, err := model.ParseResource("https://mirror.example.com/pub/dos/game-disk2of3.zip")
	if err != nil {
		t.Fatalf("ParseResource() error = %v", err)
	}

	sib := res.Sibling("game-disk1of3.zip")

	if sib.Filename != "game-disk1of3.zip" {
		t.Errorf("Filename = %q, want %q", sib.Filename, "game-disk1of3.zip")
	}
	if got, want := sib.String(), "https://mirror.example.com/pub/dos/game-disk1of3.zip"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// The original resource is untouched.
	if res.Filename != "game-disk2of3.zip" {
		t.Errorf("original Filename mutated to %q", res.Filename)
	}
}

func TestResource_Sibling_EncodesSpecialCharacters(t *testing.T) {
	res, err := model.ParseResource("https://mirror.example.com/pub/Adventure%20Disk%202%20of%202.zip")
	if err != nil {
		t.Fatalf("ParseResource() error = %v", err)
	}

	sib := res.Sibling("Adventure Disk 1 of 2.zip")

	if got, want := sib.String(), "https://mirror.example.com/pub/Adventure%20Disk%201%20of%202.zip"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
