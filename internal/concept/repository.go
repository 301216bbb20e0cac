package concept

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetConcept(ctx context.Context) (*Concept, error) {
	query := `
		SELECT description, hero_image_url, hero_video_url, updated_at
		FROM concept
		WHERE id = 1
	`

	var c Concept
	err := r.db.GetContext(ctx, &c, query)
	if errors.Is(err, sql.ErrNoRows) {
		return &Concept{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) UpdateConcept(ctx context.Context, c *Concept) (*Concept, error) {
	query := `
		INSERT INTO concept (id, description, hero_image_url, hero_video_url, updated_at)
		VALUES (1, $1, $2, $3, NOW())
		ON CONFLICT (id) DO UPDATE
		SET description = $1, hero_image_url = $2, hero_video_url = $3, updated_at = NOW()
		RETURNING description, hero_image_url, hero_video_url, updated_at
	`

	var updated Concept
	err := r.db.GetContext(ctx, &updated, query, c.Description, c.HeroImageURL, c.HeroVideoURL)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

const configColumns = `background_color, gradient_color, primary_color, secondary_color,
	text_color, font_family, font_size, app_title, app_subtitle,
	choose_session_text, choose_offer_text, user_info_text, button_text, updated_at`

func (r *repository) GetConfig(ctx context.Context) (*SiteConfig, error) {
	query := `SELECT ` + configColumns + ` FROM site_config WHERE id = 1`

	var cfg SiteConfig
	err := r.db.GetContext(ctx, &cfg, query)
	if errors.Is(err, sql.ErrNoRows) {
		def := DefaultSiteConfig()
		return &def, nil
	}
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (r *repository) UpdateConfig(ctx context.Context, cfg *SiteConfig) (*SiteConfig, error) {
	query := `
		INSERT INTO site_config (
			id, background_color, gradient_color, primary_color, secondary_color,
			text_color, font_family, font_size, app_title, app_subtitle,
			choose_session_text, choose_offer_text, user_info_text, button_text, updated_at
		)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (id) DO UPDATE
		SET background_color = $1, gradient_color = $2, primary_color = $3,
			secondary_color = $4, text_color = $5, font_family = $6, font_size = $7,
			app_title = $8, app_subtitle = $9, choose_session_text = $10,
			choose_offer_text = $11, user_info_text = $12, button_text = $13,
			updated_at = NOW()
		RETURNING ` + configColumns

	var updated SiteConfig
	err := r.db.GetContext(ctx, &updated, query,
		cfg.BackgroundColor, cfg.GradientColor, cfg.PrimaryColor, cfg.SecondaryColor,
		cfg.TextColor, cfg.FontFamily, cfg.FontSize, cfg.AppTitle, cfg.AppSubtitle,
		cfg.ChooseSessionText, cfg.ChooseOfferText, cfg.UserInfoText, cfg.ButtonText)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
