package entities

import "errors"

// TemplateInfo describes a deck template discovered on disk.
type TemplateInfo struct {
	// Name is the template file name (e.g. "business_pitch.pptx")
	Name string `json:"name"`

	// Label is the display name derived from the file name
	// (e.g. "Business Pitch")
	Label string `json:"label"`

	// Path locates the template file, relative to the working directory
	// when the configured templates directory is relative
	Path string `json:"path"`

	// ThumbnailPath points at the preview image, empty when none exists
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
}

// Validate ensures the template reference is usable
func (t TemplateInfo) Validate() error {
	if t.Name == "" {
		return errors.New("template name cannot be empty")
	}
	if t.Path == "" {
		return errors.New("template path cannot be empty")
	}
	return nil
}
