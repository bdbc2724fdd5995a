package domain

import "strings"

// Field identifies one of the essential lead attributes.
type Field string

const (
	FieldName          Field = "name"
	FieldCompany       Field = "company"
	FieldCountry       Field = "country"
	FieldContact       Field = "contact"
	FieldNeed          Field = "need"
	FieldJobTitle      Field = "jobTitle"
	FieldMonthlyLeads  Field = "monthlyLeads"
	FieldSalesTeamSize Field = "salesTeamSize"
	FieldUrgency       Field = "urgency"
)

// EssentialFields is the ordered list of attributes that must all be present
// before qualification can run. Declaration order is the tie-break order for
// NextMissingField.
var EssentialFields = []Field{
	FieldName,
	FieldCompany,
	FieldCountry,
	FieldContact,
	FieldNeed,
	FieldJobTitle,
	FieldMonthlyLeads,
	FieldSalesTeamSize,
	FieldUrgency,
}

var fieldQuestions = map[Field]string{
	FieldName:          "What is your full name?",
	FieldCompany:       "What is the name of your company?",
	FieldCountry:       "Which country are you contacting us from?",
	FieldContact:       "So our team can reach you, could you share an email or phone number?",
	FieldNeed:          "In one sentence, what is your company's main need today?",
	FieldJobTitle:      "What is your role at the company?",
	FieldMonthlyLeads:  "How many leads do you generate per month today?",
	FieldSalesTeamSize: "How many salespeople does the company currently have?",
	FieldUrgency:       "How soon do you need a solution in place? (e.g. 2 months, tomorrow, 6 months)",
}

// Value returns the raw string stored for the given field.
func (d LeadData) Value(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldCompany:
		return d.Company
	case FieldCountry:
		return d.Country
	case FieldContact:
		return d.Contact
	case FieldNeed:
		return d.Need
	case FieldJobTitle:
		return d.JobTitle
	case FieldMonthlyLeads:
		return d.MonthlyLeads
	case FieldSalesTeamSize:
		return d.SalesTeamSize
	case FieldUrgency:
		return d.Urgency
	}
	return ""
}

func (d *LeadData) setValue(f Field, value string) {
	switch f {
	case FieldName:
		d.Name = value
	case FieldCompany:
		d.Company = value
	case FieldCountry:
		d.Country = value
	case FieldContact:
		d.Contact = value
	case FieldNeed:
		d.Need = value
	case FieldJobTitle:
		d.JobTitle = value
	case FieldMonthlyLeads:
		d.MonthlyLeads = value
	case FieldSalesTeamSize:
		d.SalesTeamSize = value
	case FieldUrgency:
		d.Urgency = value
	}
}

// NextMissingField returns the first essential field, in declaration order,
// that is still absent (empty after trimming). The second return is false
// when collection is complete.
func NextMissingField(d LeadData) (Field, bool) {
	for _, field := range EssentialFields {
		if strings.TrimSpace(d.Value(field)) == "" {
			return field, true
		}
	}
	return "", false
}

// IsComplete reports whether every essential field is present.
func IsComplete(d LeadData) bool {
	_, missing := NextMissingField(d)
	return !missing
}

// QuestionFor returns the fixed question used to ask for a field.
func QuestionFor(f Field) string {
	return fieldQuestions[f]
}
