package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdfgenie/genie/models"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{models.ErrCodeInvalidInput, http.StatusBadRequest},
		{models.ErrCodeNoSession, http.StatusBadRequest},
		{models.ErrCodeNotFound, http.StatusNotFound},
		{models.ErrCodeUpstreamNotFound, http.StatusNotFound},
		{models.ErrCodeUpstreamTimeout, http.StatusGatewayTimeout},
		{models.ErrCodeUpstreamUnavailable, http.StatusServiceUnavailable},
		{models.ErrCodeUpstreamUnreachable, http.StatusBadGateway},
		{models.ErrCodeFeedbackNotPersisted, http.StatusBadGateway},
		{models.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorToStatus(models.NewGenieError(tt.code, "", nil)))
		})
	}

	assert.Equal(t, http.StatusInternalServerError, mapErrorToStatus(models.AsGenieError(errors.New("boom"))))
}

func TestArchiveTitle(t *testing.T) {
	assert.Equal(t, "Given", archiveTitle(" Given ", "# Heading", false))
	assert.Equal(t, "Heading", archiveTitle("", "intro\n# Heading\n", false))
	assert.Equal(t, defaultSummaryTitle, archiveTitle("", "no heading", false))
	assert.Equal(t, defaultResearchTitle, archiveTitle("", "no heading", true))
}
