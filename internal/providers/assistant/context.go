package assistant

import "strings"

// GlossaryEntry is one row of the dashboard's data glossary. The same
// entries back the glossary tab and the assistant's system context.
type GlossaryEntry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Source     string `json:"source"`
	Notes      string `json:"notes"`
}

// Glossary returns the dashboard glossary in display order.
func Glossary() []GlossaryEntry {
	return glossary
}

var glossary = []GlossaryEntry{
	{"donor_id", "A unique identifier assigned to each donor.", "Pledges, Payments", "Used to track individual donors across pledges and payments."},
	{"pledge_id", "A unique identifier for each pledge; a new pledge is created if a donor changes amount or frequency.", "Pledges, Payments", "Key for merging datasets; multiple pledges per donor are possible."},
	{"donor_chapter", "The channel or organization where a donor first signed their pledge (e.g., university chapter).", "Pledges", "No difference between 'n/a' and empty cells; both indicate unknown."},
	{"chapter_type", "Categories of donor_chapter (e.g., UG for Undergraduate).", "Pledges", "Helps group chapters by type for analysis."},
	{"pledge_status", "Status of the pledge (e.g., Active donor, Pledged donor, Payment failure, Churned donor).", "Pledges", "Focus on 'Active' or 'Pledged' for key metrics; 'Payment failure' and 'Churned' indicate attrition."},
	{"pledge_created_at", "The date and time when the pledge was created.", "Pledges", "Used for tracking pledge initiation."},
	{"pledge_starts_at", "The date when the pledge payment schedule begins.", "Pledges", "Relevant for future pledge analysis."},
	{"pledge_ended_at", "The date when the pledge payment schedule ends (if applicable).", "Pledges", "Indicates completed or cancelled pledges."},
	{"contribution_amount", "The amount of money the donor pledged to contribute.", "Pledges", "Basis for Annualized Run Rate (ARR) calculations; may need USD conversion."},
	{"currency", "The currency in which the pledged payments are to be made.", "Pledges, Payments", "Metrics often require conversion to USD for consistency."},
	{"frequency", "The frequency of pledged payments (e.g., monthly, one-time).", "Pledges", "Affects ARR and payment scheduling."},
	{"payment_platform", "The platform that processed the payment (e.g., Benevity, Donational).", "Pledges, Payments", "Useful for analyzing platform performance."},
	{"id", "A unique identifier for each payment record.", "Payments", "Distinct from pledge_id; used for payment tracking."},
	{"portfolio", "The allocation of the donation (e.g., OFTW Top Picks, Entire OFTW Portfolio).", "Payments", "Excludes 'Discretionary Fund' and 'Operating Costs' for Money Moved calculations."},
	{"amount", "The amount of money donated in a payment.", "Payments", "Basis for Money Moved; multiplied by counterfactuality for impact assessment."},
	{"date", "The date when the payment was made.", "Payments", "Used for YTD and time lag calculations."},
	{"counterfactual", "A value between 0 and 1 indicating the likelihood that the donation wouldn't have occurred without OFTW (0 = 0%, 1 = 100%).", "Payments", "Multiplied by amount to calculate counterfactual Money Moved."},
	{"Money Moved (YTD)", "Total amount of money moved year-to-date, adjusted by counterfactuality, for the fiscal year (July 1 to June 30).", "KPIs", "Current YTD is July 1, 2024, to March 09, 2025; excludes discretionary/operating costs."},
	{"Counterfactual MM", "Money Moved multiplied by the counterfactuality value to reflect OFTW's unique impact.", "KPIs", "Key impact metric; excludes certain portfolios."},
	{"Active Annualized Run Rate (ARR)", "Total monthly donation amount from active pledges, converted to USD.", "KPIs", "Based on contribution_amount for 'Active donor' pledges."},
	{"Pledge Attrition Rate", "Proportion of pledges with status 'Payment failure' or 'Churned donor' relative to all pledges.", "KPIs", "Indicates donor retention; helps target interventions."},
	{"Total Number of Active Donors", "Count of unique donor_id with pledge_status 'Active donor' or 'one-time'.", "KPIs", "Tracks active donor base."},
	{"Total Number of Active Pledges", "Count of unique pledge_id with pledge_status 'Active donor'.", "KPIs", "Measures current payment commitments."},
	{"Chapter ARR", "ARR broken down by donor_chapter and chapter_type.", "KPIs", "Identifies high-performing chapters."},
	{"Fiscal Year", "The OFTW financial year, running from July 1 to June 30.", "KPIs", "Current fiscal year is July 1, 2024, to June 30, 2025."},
}

const chartContext = `The dashboard contains the following charts:
Chart,Description
Active Annualized Run Rate by Top 10 Chapters,A horizontal bar chart displaying the total monthly donation amounts from active pledges (pledge_status 'Active donor') for the top 10 chapters by contribution_amount. The x-axis shows the Annualized Run Rate in USD, and the y-axis lists the chapters. It helps identify which chapters are contributing the most to recurring revenue.
Pledge Attrition Rate,A pie chart showing the proportion of pledges that have the status 'Payment failure' or 'Churned donor' compared to all pledges. It indicates donor retention challenges by visualizing the percentage of pledges that have failed or been discontinued versus those that remain active.
Time Lag Distribution (Days),A histogram illustrating the distribution of the time lag (in days) between the pledge creation date (pledge_created_at) and the payment date (date). It helps understand delays in donor payments, highlighting how long it typically takes for donors to fulfill their pledges after making them.

The dashboard also contains the following non-chart elements (do not describe these as charts):
Element,Description
Total Counterfactual Money Moved (YTD),A text metric showing the total amount of money moved year-to-date, adjusted by counterfactuality, reflecting OFTW's unique impact for the current fiscal year. It excludes donations to 'Discretionary Fund' and 'Operating Costs'. This is not a chart but a summary statistic.
Merged Data Sample,A table displaying the merged dataset, combining pledges and payments data on pledge_id. It includes columns like donor_id, pledge_status, amount, etc. This is not a chart but a data table for reference.

When asked to explain charts, use simple language as if explaining to a novice. For other inquiries, provide clear and concise explanations about fields, metrics, or charts as requested.`

// SystemContext renders the fixed system prompt: glossary rows in CSV-ish
// form followed by the chart descriptions.
func SystemContext() string {
	var b strings.Builder
	b.WriteString("You are an AI assistant for the One For The World (OFTW) dashboard. ")
	b.WriteString("Use the following glossary to answer questions about data fields and metrics:\n")
	b.WriteString("Term,Definition,Source,Notes\n")
	for _, e := range glossary {
		b.WriteString(e.Term)
		b.WriteString(",")
		b.WriteString(e.Definition)
		b.WriteString(",")
		b.WriteString(e.Source)
		b.WriteString(",")
		b.WriteString(e.Notes)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(chartContext)
	return b.String()
}
