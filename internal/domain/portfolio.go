package domain

import "time"

type SocialLinks struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	YouTube   string `json:"youtube"`
}

type PortfolioData struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	SocialLinks SocialLinks `json:"socialLinks"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// DefaultPortfolio is served when the portfolio_data table is empty,
// so a fresh deployment still renders something.
func DefaultPortfolio() *PortfolioData {
	return &PortfolioData{
		Name:        "Your Name",
		Title:       "Software Developer",
		Description: "Hello! I build things for the web.",
		Location:    "Earth",
		SocialLinks: SocialLinks{
			Instagram: "#",
			Facebook:  "#",
			Twitter:   "#",
			YouTube:   "#",
		},
	}
}
