// Package generation provides interfaces and supporting types for producing
// AI-generated study aids (summaries, explanations, practice exercises) from
// course text. It abstracts the details of the LLM API integration (Gemini),
// and contains the parsing layer that recovers structured exercises from
// free-text model output without coupling the application to the external
// service.
package generation
