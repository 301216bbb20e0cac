package concept

import "time"

// Concept is the landing content shown above the booking form.
type Concept struct {
	Description  string    `db:"description" json:"description"`
	HeroImageURL string    `db:"hero_image_url" json:"heroImageUrl"`
	HeroVideoURL string    `db:"hero_video_url" json:"heroVideoUrl"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// SiteConfig carries the coach-tunable theming and copy.
type SiteConfig struct {
	BackgroundColor   string    `db:"background_color" json:"background_color"`
	GradientColor     string    `db:"gradient_color" json:"gradient_color"`
	PrimaryColor      string    `db:"primary_color" json:"primary_color"`
	SecondaryColor    string    `db:"secondary_color" json:"secondary_color"`
	TextColor         string    `db:"text_color" json:"text_color"`
	FontFamily        string    `db:"font_family" json:"font_family"`
	FontSize          int       `db:"font_size" json:"font_size"`
	AppTitle          string    `db:"app_title" json:"app_title"`
	AppSubtitle       string    `db:"app_subtitle" json:"app_subtitle"`
	ChooseSessionText string    `db:"choose_session_text" json:"choose_session_text"`
	ChooseOfferText   string    `db:"choose_offer_text" json:"choose_offer_text"`
	UserInfoText      string    `db:"user_info_text" json:"user_info_text"`
	ButtonText        string    `db:"button_text" json:"button_text"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultSiteConfig seeds a fresh install.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		BackgroundColor:   "#020617",
		GradientColor:     "#3b0764",
		PrimaryColor:      "#d91cd2",
		SecondaryColor:    "#8b5cf6",
		TextColor:         "#ffffff",
		FontFamily:        "system-ui",
		FontSize:          16,
		AppTitle:          "Afroboost",
		AppSubtitle:       "Réservation de casque",
		ChooseSessionText: "Choisissez votre session",
		ChooseOfferText:   "Choisissez votre offre",
		UserInfoText:      "Vos informations",
		ButtonText:        "Réserver maintenant",
	}
}

type UpdateConceptRequest struct {
	Description  string `json:"description"`
	HeroImageURL string `json:"heroImageUrl"`
	HeroVideoURL string `json:"heroVideoUrl"`
}
