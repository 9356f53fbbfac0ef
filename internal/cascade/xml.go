package cascade

import "encoding/xml"

// The structs below mirror the cascade layout written by opencv_traincascade.
// Numeric payloads are kept as text and parsed by hand so that whitespace
// and the "1." style literals used by the trainer are tolerated.

type xmlStorage struct {
	XMLName xml.Name    `xml:"opencv_storage"`
	Cascade *xmlCascade `xml:"cascade"`
}

type xmlCascade struct {
	StageType   string       `xml:"stageType"`
	FeatureType string       `xml:"featureType"`
	Height      string       `xml:"height"`
	Width       string       `xml:"width"`
	Stages      []xmlStage   `xml:"stages>_"`
	Features    []xmlFeature `xml:"features>_"`
}

type xmlStage struct {
	StageThreshold  string          `xml:"stageThreshold"`
	WeakClassifiers []xmlClassifier `xml:"weakClassifiers>_"`
}

type xmlClassifier struct {
	InternalNodes string `xml:"internalNodes"`
	LeafValues    string `xml:"leafValues"`
}

type xmlFeature struct {
	Rects  []string `xml:"rects>_"`
	Tilted string   `xml:"tilted"`
}
