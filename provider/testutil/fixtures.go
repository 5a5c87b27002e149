package testutil

import (
	"bytes"
	"image"
	"image/jpeg"

	"iris/model"
)

// TestAttachment returns a small valid JPEG attachment for testing
func TestAttachment() *model.ImageAttachment {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	_ = jpeg.Encode(&buf, img, nil)

	return &model.ImageAttachment{
		Name:     "test.jpg",
		Data:     buf.Bytes(),
		MIMEType: "image/jpeg",
		Width:    2,
		Height:   2,
	}
}

// TestQuestions returns sample questions for table-driven tests
func TestQuestions() []string {
	return []string{
		"What is in this image?",
		"Describe the colors in the picture",
		"How many people are visible?",
	}
}
