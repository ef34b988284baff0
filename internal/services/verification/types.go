package verification

// CertificationInput is the profile a user submits for review.
type CertificationInput struct {
	RealName      string `json:"real_name" validate:"required,max=64"`
	IDCardNumber  string `json:"id_card_number" validate:"required,min=6,max=32,alphanum"`
	PayoutName    string `json:"payout_name" validate:"required,max=64"`
	PayoutAccount string `json:"payout_account" validate:"required,max=128"`
}
