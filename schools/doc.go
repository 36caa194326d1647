// Package schools holds the domain model for the fictional-school finder:
// the validated SchoolRecord type, the instruction text sent to the
// generative model, and the JSON schema describing the expected reply.
package schools
