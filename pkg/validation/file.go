package validation

import (
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"remplr/pkg/config"
	apperrors "remplr/pkg/errors"
)

// ValidateFile проверяет размер и определённый MIME-тип по config.UploadContexts.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return apperrors.NewContractViolation("unknown upload context %q", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return apperrors.NewValidationError("file size (%.2f MB) exceeds the %d MB limit", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return apperrors.NewValidationError("could not read uploaded file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return apperrors.NewValidationError("could not read uploaded file")
	}

	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return apperrors.NewValidationError("unsupported file type: %s", mimeType)
	}

	return nil
}
