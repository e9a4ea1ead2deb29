package ports

import "go.trai.ch/brokenpkg/internal/core/domain"

// FileClassifier decides which check applies to a path.
//
//go:generate go run go.uber.org/mock/mockgen -source=classifier.go -destination=mocks/mock_classifier.go -package=mocks
type FileClassifier interface {
	// Classify inspects path metadata (and, for candidates, header bytes) and returns its kind.
	// A returned error always comes with domain.FileKindIrrelevant and is a per-file diagnostic.
	Classify(path string) (domain.FileKind, error)
}
