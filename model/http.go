package model

type TimeSigRequestBody struct {
	Numerator       int   `json:"numerator"`
	Denominator     int   `json:"denominator"`
	Custom          bool  `json:"custom"`
	ScoreNumerators []int `json:"scoreNumerators"`
	// 0-based, only used to label errors
	Measure int  `json:"measure"`
	Narrow  bool `json:"narrow"`
}

type TupletRequestBody struct {
	Count int `json:"count"`
	// unit duration in quarter notes, either a number or a fraction like "1/2"
	Unit   string `json:"unit"`
	Narrow bool   `json:"narrow"`
}

type BeamModeResponse struct {
	Legacy int    `json:"legacy"`
	Mode   int    `json:"mode"`
	Name   string `json:"name"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
