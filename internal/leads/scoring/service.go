// Package scoring implements the deterministic interval-based score over
// interpreted lead data. It is a pure function of its input: no AI, no
// clocks, no hidden state.
package scoring

import (
	"fmt"
	"math"

	"leadflow_backend/internal/leads/domain"
)

const (
	maxUrgencyScore    = 20
	maxSeniorityScore  = 20
	maxTeamSizeScore   = 30
	maxLeadVolumeScore = 30
	maxTotalScore      = maxUrgencyScore + maxSeniorityScore + maxTeamSizeScore + maxLeadVolumeScore
)

// Score maps interpreted lead data to the four dimension breakdowns and the
// composite result. Re-running on identical input yields an identical result.
func Score(data domain.ProcessedLeadData) domain.ScoreResult {
	breakdown := domain.Breakdown{
		Urgency:    scoreUrgency(data.UrgencyDays),
		Seniority:  scoreSeniority(data.Seniority, data.JobTitleRaw),
		TeamSize:   scoreTeamSize(data.SalesTeamSize),
		LeadVolume: scoreLeadVolume(data.MonthlyLeads),
	}

	total := breakdown.Urgency.Score + breakdown.Seniority.Score +
		breakdown.TeamSize.Score + breakdown.LeadVolume.Score

	return domain.ScoreResult{
		TotalScore:    total,
		MaxScore:      maxTotalScore,
		Percentage:    percentage(total, maxTotalScore),
		Breakdown:     breakdown,
		ProcessedData: data,
	}
}

func scoreUrgency(days *int) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{MaxScore: maxUrgencyScore}
	if days == nil {
		b.Details = "urgency not informed"
		return b
	}
	switch d := *days; {
	case d <= 30:
		b.Score = 20
		b.Details = fmt.Sprintf("%d days (<=30 days)", d)
	case d <= 60:
		b.Score = 10
		b.Details = fmt.Sprintf("%d days (31-60 days)", d)
	default:
		b.Score = 5
		b.Details = fmt.Sprintf("%d days (>60 days)", d)
	}
	return b
}

func scoreSeniority(tier domain.Seniority, rawTitle string) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{MaxScore: maxSeniorityScore}
	if tier == "" {
		b.Details = "job title not informed"
		return b
	}
	switch tier {
	case domain.SeniorityCLevel:
		b.Score = 20
		b.Details = fmt.Sprintf("C-level/decision maker (%s)", rawTitle)
	case domain.SeniorityManager:
		b.Score = 15
		b.Details = fmt.Sprintf("Manager/influencer (%s)", rawTitle)
	case domain.SeniorityAnalyst:
		b.Score = 5
		b.Details = fmt.Sprintf("Analyst/specialist (%s)", rawTitle)
	case domain.SeniorityEntry:
		b.Score = 0
		b.Details = fmt.Sprintf("Entry level/no authority (%s)", rawTitle)
	default:
		b.Score = 0
		b.Details = fmt.Sprintf("Unrecognized job title (%s)", rawTitle)
	}
	return b
}

func scoreTeamSize(size *int) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{MaxScore: maxTeamSizeScore}
	if size == nil {
		b.Details = "sales team size not informed"
		return b
	}
	switch s := *size; {
	case s >= 11:
		b.Score = 30
		b.Details = fmt.Sprintf("%d salespeople (>=11)", s)
	case s >= 4:
		b.Score = 20
		b.Details = fmt.Sprintf("%d salespeople (4-10)", s)
	case s >= 1:
		b.Score = 10
		b.Details = fmt.Sprintf("%d salespeople (1-3)", s)
	default:
		b.Score = 0
		b.Details = fmt.Sprintf("%d salespeople (0)", s)
	}
	return b
}

func scoreLeadVolume(volume *int) domain.ScoreBreakdown {
	b := domain.ScoreBreakdown{MaxScore: maxLeadVolumeScore}
	if volume == nil {
		b.Details = "monthly lead volume not informed"
		return b
	}
	switch v := *volume; {
	case v > 1000:
		b.Score = 30
		b.Details = fmt.Sprintf("%d monthly leads (>1000)", v)
	case v >= 501:
		b.Score = 20
		b.Details = fmt.Sprintf("%d monthly leads (501-1000)", v)
	case v >= 101:
		b.Score = 10
		b.Details = fmt.Sprintf("%d monthly leads (101-500)", v)
	case v >= 0:
		b.Score = 5
		b.Details = fmt.Sprintf("%d monthly leads (0-100)", v)
	default:
		b.Score = 0
		b.Details = fmt.Sprintf("%d monthly leads", v)
	}
	return b
}

// percentage is kept as a named step even though max is currently 100, so a
// future max-score change does not touch the formula's call sites.
func percentage(total, max int) int {
	return int(math.Round(float64(total) / float64(max) * 100))
}
