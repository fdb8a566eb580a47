package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, result := range []string{"processed", "ignored", "failed"} {
		WalkEntriesTotal.WithLabelValues(result)
	}

	for _, t := range []string{"image", "video"} {
		for _, status := range []string{"success", "skipped", "error", "error_unsupported"} {
			ThumbnailGenerationsTotal.WithLabelValues(t, status)
		}
		ThumbnailGenerationDuration.WithLabelValues(t)
		GalleryItemsTotal.WithLabelValues(t)
	}

	for _, status := range []string{"success", "error"} {
		MetadataStripTotal.WithLabelValues(status)
		GalleryPagesTotal.WithLabelValues(status)
	}

	for _, tool := range []string{"ffmpeg", "ffprobe", "exiftool", "imaging", "vips"} {
		ExternalToolDuration.WithLabelValues(tool)
		ExternalToolErrors.WithLabelValues(tool)
	}

	for _, op := range []string{"stat", "open"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemRetryDuration.WithLabelValues(op)
	}
}
