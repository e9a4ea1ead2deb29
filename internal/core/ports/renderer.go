package ports

import (
	"io"

	"go.trai.ch/brokenpkg/internal/core/domain"
)

// ReportRenderer writes a completed scan report.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type ReportRenderer interface {
	// Render writes report to w deterministically.
	Render(w io.Writer, report *domain.ScanReport) error
}
