package schools

import "fmt"

// DefaultTargetCount is the number of entries the prompt asks the model to
// produce per batch. It is a prompt-tuning parameter, not a contract: the
// normalizer accepts batches of any size, including empty ones.
const DefaultTargetCount = 40

// SystemPrompt frames the model as a generator of fictional data. The output
// is explicitly invented; no real school data accuracy is expected or wanted.
const SystemPrompt = `You are a data generator that invents plausible but entirely fictional schools near a given street address. The schools you produce do not exist; names, addresses, people, and contact details must all be invented. Respond with ONLY a raw JSON array - no markdown, no code fences, no commentary before or after the JSON.`

// BuildPrompt returns the user instruction for one search. It enumerates the
// expected JSON shape, which fields are required versus optional, and the
// target quantity of entries. The exact wording is a tuning parameter; the
// only contract is that the model usually replies with a JSON array of
// objects matching [SchoolRecord].
func BuildPrompt(address string, targetCount int) string {
	if targetCount <= 0 {
		targetCount = DefaultTargetCount
	}
	return fmt.Sprintf(`Invent a list of at least %d fictional schools located near this address: %s

Respond with ONLY a JSON array in this exact format:
[
  {
    "name": "Fictional school name",
    "address": "Fictional street address near the given location",
    "type": "One of: Elementary School, Middle School, High School, Charter School, Private School",
    "studentCount": 450,
    "phoneNumber": "(555) 123-4567",
    "principalName": "Fictional full name",
    "assistantName": "Fictional full name",
    "managerEmail": "fictional@example.org",
    "assistantEmail": "fictional@example.org"
  }
]

Rules:
1. "name", "address", "type", and "studentCount" are REQUIRED for every entry.
2. "studentCount" must be a non-negative whole number, not a string.
3. "phoneNumber", "principalName", "assistantName", "managerEmail", and "assistantEmail" are optional; omit a key entirely rather than sending null or an empty string.
4. Every entry must be fictional. Do not reproduce real schools.
5. Output the raw JSON array only, with no surrounding text.`, targetCount, address)
}
