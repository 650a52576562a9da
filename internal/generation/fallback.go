package generation

import "strings"

// FallbackCatalog maps a task keyword found in a prompt to a pre-authored
// block of study guidance. It is substituted for a provider response when
// the remote service is unavailable and retries are exhausted, so that the
// user always receives something actionable instead of a raw error.
//
// The catalog is immutable after construction; lookups are read-only and
// safe for concurrent use.
type FallbackCatalog struct {
	summarize string
	explain   string
	exercise  string
	fallback  string
}

// NewFallbackCatalog constructs the process-wide fallback catalog.
func NewFallbackCatalog() *FallbackCatalog {
	return &FallbackCatalog{
		summarize: fallbackSummary,
		explain:   fallbackExplanation,
		exercise:  fallbackExercises,
		fallback:  fallbackDefault,
	}
}

// Lookup selects the fallback text for the given prompt by scanning it
// case-insensitively for the task keywords "summarize", "explain", and
// "exercise", in that priority order. Prompts matching none of the keywords
// receive the default entry. The selection is deterministic and
// side-effect-free.
func (c *FallbackCatalog) Lookup(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "summarize"):
		return c.summarize
	case strings.Contains(lower, "explain"):
		return c.explain
	case strings.Contains(lower, "exercise"):
		return c.exercise
	default:
		return c.fallback
	}
}

const fallbackSummary = `# Summary

The AI service is currently experiencing high demand. Here are some general study tips:

## How to Create Your Own Summary:
- **Read through the content carefully** - Take your time to understand each section
- **Identify key concepts** - Look for main ideas, definitions, and important facts
- **Use bullet points** - Organize information in easy-to-read lists
- **Highlight important terms** - Mark vocabulary and technical terms
- **Create sections** - Group related information together

## Study Tips:
- Take breaks every 25-30 minutes
- Use active reading techniques
- Create mind maps or diagrams
- Practice explaining concepts out loud
- Review material multiple times

*Please try again in a few moments when the AI service is less busy.*`

const fallbackExplanation = `# Explanation

The AI service is currently busy processing other requests. Here's how you can approach understanding complex topics:

## Step-by-Step Learning Approach:
1. **Start with the basics** - Understand fundamental concepts first
2. **Break it down** - Divide complex topics into smaller parts
3. **Use analogies** - Connect new information to things you already know
4. **Ask questions** - What, why, how, when, where?
5. **Practice application** - Try to use the concepts in examples

## Additional Resources:
- Look up terms in a dictionary or glossary
- Search for video explanations online
- Discuss with classmates or teachers
- Use textbooks and reference materials

*The AI service will be available again shortly. Please try your request again.*`

const fallbackExercises = `# Practice Exercises

The AI service is currently overloaded. Here are some general study exercises you can try:

## Self-Study Techniques:

### Exercise 1: Concept Mapping
**Task:** Create a visual map of the main concepts
**How:** Draw connections between related ideas
**Benefits:** Helps visualize relationships between topics

### Exercise 2: Teach-Back Method
**Task:** Explain the topic to someone else (or yourself)
**How:** Use simple language to describe key points
**Benefits:** Tests your understanding and reveals gaps

### Exercise 3: Question Generation
**Task:** Create 5-10 questions about the material
**How:** Write questions that test different levels of understanding
**Benefits:** Helps identify important information

### Exercise 4: Real-World Application
**Task:** Find examples of how this applies in real life
**How:** Think of practical uses or current examples
**Benefits:** Makes learning more meaningful and memorable

*Please try again when the AI service is less busy for personalized exercises.*`

const fallbackDefault = `# Service Temporarily Unavailable

The AI service is currently experiencing high demand and is temporarily overloaded.

## What you can do:
- **Try again in a few minutes** - The service usually recovers quickly
- **Use shorter content** - Smaller requests are processed faster
- **Break up large requests** - Divide long content into smaller sections

## Alternative study methods:
- Use online educational resources
- Consult textbooks and reference materials
- Form study groups with classmates
- Seek help from teachers or tutors

*We apologize for the inconvenience. Please try your request again shortly.*`
