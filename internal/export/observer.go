package export

// Observer is told about every completed export.
type Observer interface {
	ObserveExport(format string, rows int)
}

type NopObserver struct{}

func (NopObserver) ObserveExport(string, int) {}
