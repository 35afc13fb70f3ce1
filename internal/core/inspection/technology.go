package inspection

import (
	"os"
	"path/filepath"
)

// TechnologyDetector はルート直下のマーカーファイルから技術スタックを判定する
type TechnologyDetector struct {
	markers []Marker
}

// NewTechnologyDetector は新しいTechnologyDetectorを作成する
func NewTechnologyDetector(rules Rules) *TechnologyDetector {
	return &TechnologyDetector{markers: rules.Markers}
}

// Detect はマーカーファイルの有無のみで判定する（内容は解析しない）
func (d *TechnologyDetector) Detect(root string) TechStack {
	stack := NewTechStack()
	for _, marker := range d.markers {
		if _, err := os.Stat(filepath.Join(root, marker.File)); err == nil {
			stack.markDetected(marker.Technology)
		}
	}
	return stack
}
