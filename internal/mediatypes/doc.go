// Package mediatypes provides the content-based type definitions shared by
// the walker, the thumbnail generator and the gallery page generator.
//
// Classification never looks at file names or extensions. A Classifier
// inspects the first HeaderSize bytes of a file:
//
//	kind := mediatypes.ContentClassifier{}.Classify(header)
//
//	switch kind {
//	case mediatypes.FileTypeImage:
//	    // Handle image
//	case mediatypes.FileTypeVideo:
//	    // Handle video
//	}
//
// Tests substitute a ClassifierFunc to make classification deterministic.
//
// DetectFormat names the concrete container (jpeg, png, heif, ...) and is
// only used for diagnostics.
package mediatypes
