package dataset

import (
	"bytes"
	"testing"
)

func TestWriteHistogramProducesPNG(t *testing.T) {
	ds := mustRead(t, sampleCSV)

	var buf bytes.Buffer
	if err := ds.WriteHistogram(&buf, 0); err != nil {
		t.Fatalf("WriteHistogram failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG signature")
	}
}
