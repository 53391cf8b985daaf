package profile

import (
	"sort"
)

// ReconcileGallery validates and orders the extracted gallery uploads.
//
// More than MaxGalleryImages uploads fail the whole update; callers must run
// this check before committing any field change, so a rejected gallery never
// leaves the rest of the profile partially updated. A non-empty result means
// "replace the entire gallery in this order"; an empty input means the
// existing gallery stays untouched and returns nil.
func ReconcileGallery(uploads []GalleryUpload) ([]GalleryUpload, *ValidationError) {
	if len(uploads) > MaxGalleryImages {
		return nil, NewValidationError("gallery", MsgGalleryLimit)
	}
	if len(uploads) == 0 {
		return nil, nil
	}

	ordered := make([]GalleryUpload, len(uploads))
	copy(ordered, uploads)
	// Presentation order follows the submitted index, not upload order.
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })
	return ordered, nil
}
