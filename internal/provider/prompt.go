package provider

import (
	"fmt"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// AuditPrompt builds the audit request sent to the model. The response
// contract is a single JSON object; the downstream extractor tolerates
// prose around it and unescaped control characters inside it.
func AuditPrompt(source string, language models.Language) string {
	langLabel := "TON smart contract"
	switch language {
	case models.LanguageFunc:
		langLabel = "FunC smart contract"
	case models.LanguageTact:
		langLabel = "Tact smart contract"
	}

	return fmt.Sprintf(`You are a senior TON blockchain security auditor. Audit the following %s for vulnerabilities, gas inefficiencies and architectural weaknesses.

Respond with a single JSON object and nothing else, using this exact shape:
{
  "overallRisk": "critical|high|medium|low|clean",
  "score": <integer 0-100, 100 = no issues>,
  "summary": "<executive summary>",
  "findings": [
    {
      "severity": "critical|high|medium|low|info",
      "category": "<short category, e.g. Access Control>",
      "title": "<one line>",
      "description": "<detailed explanation>",
      "location": "<function or line reference, optional>",
      "recommendation": "<how to fix>",
      "codeSnippet": "<offending line, optional>"
    }
  ],
  "gasAnalysis": "<gas usage assessment>",
  "architectureNotes": "<structural assessment>"
}

Contract source:
%s`, langLabel, source)
}
