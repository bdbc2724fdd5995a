package domain

import "testing"

func completeLead() LeadData {
	return LeadData{
		Name:          "Ana Souza",
		Company:       "Acme",
		Contact:       "ana@acme.com",
		Country:       "Brazil",
		Need:          "qualify inbound leads",
		Urgency:       "2 months",
		JobTitle:      "CEO",
		SalesTeamSize: "15",
		MonthlyLeads:  "800",
	}
}

func TestNextMissingFieldFollowsDeclarationOrder(t *testing.T) {
	data := LeadData{}
	expected := []Field{
		FieldName, FieldCompany, FieldCountry, FieldContact, FieldNeed,
		FieldJobTitle, FieldMonthlyLeads, FieldSalesTeamSize, FieldUrgency,
	}

	for _, want := range expected {
		got, missing := NextMissingField(data)
		if !missing {
			t.Fatalf("expected %s to be missing", want)
		}
		if got != want {
			t.Fatalf("expected next missing field %s, got %s", want, got)
		}
		data.setValue(want, "filled")
	}

	if _, missing := NextMissingField(data); missing {
		t.Fatal("expected collection to be complete once every field is set")
	}
}

func TestNextMissingFieldTreatsWhitespaceAsAbsent(t *testing.T) {
	data := completeLead()
	data.Country = "   "

	got, missing := NextMissingField(data)
	if !missing {
		t.Fatal("expected whitespace-only country to count as missing")
	}
	if got != FieldCountry {
		t.Fatalf("expected country, got %s", got)
	}
}

func TestIsCompleteRequiresAllNineFields(t *testing.T) {
	if !IsComplete(completeLead()) {
		t.Fatal("expected complete lead to report complete")
	}

	partial := completeLead()
	partial.Urgency = ""
	if IsComplete(partial) {
		t.Fatal("expected lead with missing urgency to report incomplete")
	}
}

func TestMergeExtractedNonBlankWins(t *testing.T) {
	base := LeadData{Name: "Ana", Company: "Old Co"}
	extracted := LeadData{Company: "New Co", Country: "Brazil"}

	merged := Merge(base, extracted)

	if merged.Name != "Ana" {
		t.Fatalf("expected base name kept, got %q", merged.Name)
	}
	if merged.Company != "New Co" {
		t.Fatalf("expected extracted company to win, got %q", merged.Company)
	}
	if merged.Country != "Brazil" {
		t.Fatalf("expected new country merged in, got %q", merged.Country)
	}
}

func TestMergeIgnoresBlankExtractedValues(t *testing.T) {
	base := LeadData{Name: "Ana"}
	extracted := LeadData{Name: "   "}

	merged := Merge(base, extracted)
	if merged.Name != "Ana" {
		t.Fatalf("expected whitespace extraction to be ignored, got %q", merged.Name)
	}
}

func TestMergeTrimsExtractedValues(t *testing.T) {
	merged := Merge(LeadData{}, LeadData{Name: "  Ana  "})
	if merged.Name != "Ana" {
		t.Fatalf("expected trimmed value, got %q", merged.Name)
	}
}

func TestQuestionForCoversEveryEssentialField(t *testing.T) {
	for _, field := range EssentialFields {
		if QuestionFor(field) == "" {
			t.Fatalf("no question registered for field %s", field)
		}
	}
}

func TestExportRecordRowOrder(t *testing.T) {
	record := ExportRecord{
		LeadID:        "lead_1",
		CreatedAt:     "2026-01-02T03:04:05Z",
		LastContactAt: "2026-01-02T03:04:05Z",
		Name:          "Ana",
		Company:       "Acme",
		Email:         "ana@acme.com",
		Phone:         "+5511999999999",
		Need:          "automation",
		Urgency:       "urgent",
		JobTitle:      "CEO",
		SalesTeamSize: "15",
		MonthlyLeads:  "800",
		Score:         80,
		Status:        StatusQualifiedForScheduling,
		FollowUpAt:    "2026-01-02T05:04:05Z",
		Notes:         "Score: 80%",
		Temperature:   TemperatureHot,
	}

	row := record.Row()
	if len(row) != 17 {
		t.Fatalf("expected 17 columns, got %d", len(row))
	}

	want := []interface{}{
		"lead_1", "2026-01-02T03:04:05Z", "2026-01-02T03:04:05Z", "Ana", "Acme",
		"ana@acme.com", "+5511999999999", "automation", "urgent", "CEO", "15",
		"800", 80, "qualified_for_scheduling", "2026-01-02T05:04:05Z",
		"Score: 80%", "hot",
	}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("column %d: expected %v, got %v", i, want[i], row[i])
		}
	}
}
