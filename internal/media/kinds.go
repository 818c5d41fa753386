package media

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two asset families the engine stores.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Class names a managed filesystem root. Each class holds one folder per
// owner; records reference paths relative to their class root.
type Class string

const (
	ClassPhotos Class = "photos"
	ClassVideos Class = "videos"
)

// ClassFor maps an asset kind to the root class its files live under.
func ClassFor(kind Kind) Class {
	if kind == KindVideo {
		return ClassVideos
	}
	return ClassPhotos
}

// KindFor maps a class back to the asset kind it stores.
func KindFor(class Class) Kind {
	if class == ClassVideos {
		return KindVideo
	}
	return KindImage
}

// ParseKind validates a user-supplied kind string.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindImage:
		return KindImage, nil
	case KindVideo:
		return KindVideo, nil
	}
	return "", fmt.Errorf("unknown asset kind %q", value)
}

// ParseClass validates a user-supplied class string.
func ParseClass(value string) (Class, error) {
	switch Class(strings.ToLower(strings.TrimSpace(value))) {
	case ClassPhotos:
		return ClassPhotos, nil
	case ClassVideos:
		return ClassVideos, nil
	}
	return "", fmt.Errorf("unknown asset class %q", value)
}
