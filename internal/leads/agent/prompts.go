package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"leadflow_backend/internal/leads/domain"

	"google.golang.org/genai"
)

const extractionSystem = "You are an agent specialized in extracting lead data in a natural, conversational way. Always be friendly and professional."

const extractionPromptTemplate = `You are a lead qualification agent for Nuvia, specialized in natural conversation and data collection.

Talk to the user in a natural, friendly way with the goal of collecting the data needed to qualify the lead.
Do not let the conversation stall: always ask for the next field that still needs to be collected.
ALWAYS end your reply with a question about the next missing field.

TASK: Analyze the user's current message and extract only the data that appears explicitly in the text. If a field is not present, leave it unset.

FIELDS TO EXTRACT:
- name: the person's full name
- company: company name
- contact: email or phone number
- country: country of origin
- need: main need/problem
- urgency: urgency to solve it
- jobTitle: role at the company
- salesTeamSize: number of salespeople
- monthlyLeads: number of monthly leads

IMPORTANT RULES:
1. Extract ONLY data that appears in the current message
2. Do NOT invent or assume data
3. If several fields appear in the same message, extract all of them
4. Keep the reply natural, conversational and friendly
5. If collection is complete, thank the user and confirm

DATA COLLECTED SO FAR:
%s

CONVERSATION HISTORY:
%s

CURRENT USER MESSAGE:
%s

Reply naturally and extract the data present in the message.`

const interpretationSystem = "You are a specialist in interpreting lead data. Always respond with valid JSON."

const interpretationPromptTemplate = `You are a specialist in interpreting lead data for sales qualification.

RAW LEAD DATA:
%s

YOUR MISSION:
1. INTERPRET the raw data and extract structured information
2. CONVERT urgency to days (e.g. "6 months" = 180 days, "2 weeks" = 14 days)
3. CLASSIFY the job title by level of authority
4. EXTRACT the exact numbers of salespeople and monthly leads
5. KEEP the original values for reference

CONVERSION RULES:
- 1 month = 30 days
- 1 week = 7 days
- 1 year = 365 days
- Words like "urgent", "asap", "immediate" = 7 days
- "Not urgent", "no deadline" = 365 days

JOB TITLE CLASSIFICATION:
- c_level: CEO, CTO, CFO, COO, President, Founder, VP, Director
- manager: Manager, Coordinator, Supervisor, Head
- analyst: Analyst, Specialist, Consultant, Advisor
- entry_level: Intern, Trainee, Junior, Assistant
- other: any title not listed above

EXAMPLES:
- "I need it in 6 months" -> urgencyDays: 180
- "We have 2 weeks" -> urgencyDays: 14
- "It's urgent" -> urgencyDays: 7
- "CEO of the company" -> seniority: "c_level"
- "15 salespeople" -> salesTeamSize: 15
- "800 leads per month" -> monthlyLeads: 800

If a number was never stated, leave the field unset rather than guessing zero.
Respond ONLY with the JSON, no additional explanation.`

const temperatureSystem = "You are a specialist in lead temperature analysis. Always respond with valid JSON."

const temperaturePromptTemplate = `You are a specialist in lead temperature analysis for B2B sales.

LEAD DATA:
%s

CONVERSATION HISTORY:
%s

ANALYZE the lead's temperature based on the interest shown in Nuvia's solution:

CLASSIFICATION CRITERIA:
HOT (80-100%%):
- Shows clear urgency ("I need it urgently", "for yesterday", "ASAP")
- Shows decision authority (CEO, CTO, VP, Director, Founder)
- Has a specific need that Nuvia solves (lead automation, qualification)
- Asks technical questions about implementation, integration, ROI
- Mentions budget, buying process, approval
- Company with high lead volume (>1000/month) and a solid sales team
- Urgency of 30 days or less

WARM (40-79%%):
- Moderate interest but no clear urgency
- Influence-level role (Manager, Coordinator, Supervisor)
- Generic need or still exploring
- Asks about features, pricing, use cases
- Says "we'll see", "I need to think", "I'll talk to the team"
- Company with medium lead volume (100-1000/month)
- Urgency of 31-60 days

COLD (0-39%%):
- Curiosity or market research only
- No clear decision authority (Analyst, Intern, Assistant)
- Vague need or unrelated to Nuvia's solution
- Very generic questions about AI, automation
- Low engagement, short answers
- Company with low lead volume (<100/month) or no sales team
- Urgency over 60 days or unspecified

Classify the lead, list at least one concrete indicator, and explain the
classification based on the data and the conversation.`

func extractionSchema() *genai.Schema {
	leadFields := map[string]*genai.Schema{}
	for _, field := range domain.EssentialFields {
		leadFields[string(field)] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"response": {
				Type:        genai.TypeString,
				Description: "Natural conversational reply ending with a question about the next missing field.",
			},
			"extractedData": {
				Type:        genai.TypeObject,
				Description: "Fields explicitly present in the current message only.",
				Properties:  leadFields,
			},
			"isComplete": {Type: genai.TypeBoolean},
			"confidence": {Type: genai.TypeNumber},
		},
		Required: []string{"response", "extractedData", "isComplete", "confidence"},
	}
}

func interpretationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"urgencyDays":   {Type: genai.TypeInteger},
			"seniority":     {Type: genai.TypeString, Enum: []string{"c_level", "manager", "analyst", "entry_level", "other"}},
			"salesTeamSize": {Type: genai.TypeInteger},
			"monthlyLeads":  {Type: genai.TypeInteger},
			"urgencyRaw":    {Type: genai.TypeString},
			"jobTitleRaw":   {Type: genai.TypeString},
			"salesTeamSizeRaw": {
				Type: genai.TypeString,
			},
			"monthlyLeadsRaw": {
				Type: genai.TypeString,
			},
		},
		Required: []string{"seniority"},
	}
}

func temperatureSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"temperature": {Type: genai.TypeString, Enum: []string{"hot", "warm", "cold"}},
			"confidence":  {Type: genai.TypeNumber},
			"indicators":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"reasoning":   {Type: genai.TypeString},
		},
		Required: []string{"temperature", "confidence", "indicators", "reasoning"},
	}
}

func formatLeadData(data domain.LeadData) string {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

func formatCollectedData(data domain.LeadData) string {
	if data == (domain.LeadData{}) {
		return "No data collected yet"
	}
	return formatLeadData(data)
}

func formatHistory(history []domain.ConversationMessage) string {
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		speaker := "Agent"
		if msg.IsUser {
			speaker = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, msg.Text))
	}
	return strings.Join(lines, "\n")
}
