package datename_test

import (
	"testing"
	"time"

	"photodate/internal/datename"
)

func TestExtractTimestamp(t *testing.T) {
	tests := []struct {
		stem string
		want time.Time
	}{
		{"IMG_20190102_160000", time.Date(2019, 1, 2, 16, 0, 0, 0, time.Local)},
		{"Screenshot_20190102-160000", time.Date(2019, 1, 2, 16, 0, 0, 0, time.Local)},
		{"20190102_160000", time.Date(2019, 1, 2, 16, 0, 0, 0, time.Local)},
		{"VID_20240229_235959_HDR", time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local)},
		{"PXL-20190715-080910.NIGHT", time.Date(2019, 7, 15, 8, 9, 10, 0, time.Local)},
		{"IMG_20191345_120000_20190103_130000", time.Date(2019, 1, 3, 13, 0, 0, 0, time.Local)},
		{"PXL_20190104_160000123", time.Date(2019, 1, 4, 16, 0, 0, 0, time.Local)},
		{"PXL_20190104_160000123.MP", time.Date(2019, 1, 4, 16, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, ok := datename.ExtractTimestamp(tt.stem)
		if !ok {
			t.Fatalf("ExtractTimestamp(%q) found nothing", tt.stem)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ExtractTimestamp(%q) = %s, want %s", tt.stem, got, tt.want)
		}
	}
}

func TestExtractTimestampRejects(t *testing.T) {
	stems := []string{
		"_DSC4897",
		"IMG20190102_160000",
		"IMG_20190102160000",
		"IMG_20190102_1600001",
		"IMG_20190102_16000012",
		"IMG_20190102_1600001234",
		"IMG_20190230_120000",
		"IMG_20190102_246000",
		"IMG_20190102_126100",
		"2019.01.02 Событие",
		"IMG_2019010_160000",
		"",
	}
	for _, stem := range stems {
		if got, ok := datename.ExtractTimestamp(stem); ok {
			t.Fatalf("ExtractTimestamp(%q) = %s, expected none", stem, got)
		}
	}
}
