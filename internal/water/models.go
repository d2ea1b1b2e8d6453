package water

// AddWaterRequest - запрос на добавление воды. Без glasses и amount_ml
// добавляется один стакан.
type AddWaterRequest struct {
	Date     string `json:"date,omitempty"`
	Glasses  *int   `json:"glasses,omitempty"`
	AmountMl *int   `json:"amount_ml,omitempty"`
}

// WaterDailyResponse - сводка воды за день
type WaterDailyResponse struct {
	Date          string `json:"date"`
	TotalMl       int    `json:"total_ml"`
	Glasses       int    `json:"glasses"`
	TargetMl      int    `json:"target_ml"`
	TargetGlasses int    `json:"target_glasses"`
	RemainingMl   int    `json:"remaining_ml"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
