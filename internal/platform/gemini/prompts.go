package gemini

import (
	"fmt"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
)

// Language directives embedded into prompts. The Arabic directives instruct
// the model to answer entirely in Arabic.
const (
	summaryDirectiveEnglish = "Please write the summary in English."
	summaryDirectiveArabic  = "يرجى كتابة الملخص باللغة العربية بشكل كامل."
	summaryDirectiveBoth    = "Please provide the summary in both English and Arabic languages."

	exercisesDirectiveEnglish = "Please write all exercises, questions, and answers in English."
	exercisesDirectiveArabic  = "يرجى كتابة التمارين والأسئلة والأجوبة باللغة العربية بشكل كامل."
	exercisesDirectiveBoth    = "Please provide exercises in both English and Arabic languages."
)

const summaryPromptTemplate = `Create a comprehensive and well-structured summary of the following educational content.
%s

Your summary should be:

REQUIREMENTS:
- Clear and concise while maintaining essential information
- Organized with proper sections and bullet points
- Include key concepts, definitions, and main ideas
- Highlight important formulas, theories, or principles
- Professional formatting for better readability
- Suitable for student review and quick reference

CONTENT TO SUMMARIZE:
%s

STRUCTURED SUMMARY:

## Main Topic & Objective
[Clearly state what this content covers]

## Key Concepts
- [List main concepts with brief explanations]

## Important Details
- [Include crucial facts, formulas, or data]

## Examples & Applications
- [Provide practical examples or use cases]

## Key Takeaways
- [List the most important points to remember]

Summary:
`

const explainPromptEnglishTemplate = `Provide a comprehensive and detailed explanation of the following educational content.

EXPLANATION REQUIREMENTS:
- Clear and detailed explanation using simple, understandable language
- Break down complex concepts into easily digestible parts
- Include practical examples from everyday life and real-world applications
- Use professional formatting for better readability
- Explain important formulas or theories with context
- Show connections between different concepts
- Provide memory aids and learning tips

EDUCATIONAL CONTENT:
%s

DETAILED EXPLANATION:

## Overview
[Brief introduction to the topic]

## Core Concepts
[Detailed explanation of main concepts]

## Practical Examples
[Clear examples from everyday life]

## Connections & Relationships
[How these concepts relate to each other]

## Learning Tips & Memory Aids
[Strategies for understanding and remembering]

## Practice Applications
[How to apply this knowledge]

Explanation:
`

const explainPromptArabicTemplate = `اشرح المحتوى التعليمي التالي بالعربية بطريقة شاملة ومفصلة.

المطلوب في الشرح:
- شرح واضح ومفصل باستخدام لغة بسيطة ومفهومة
- تقسيم المفاهيم المعقدة إلى أجزاء سهلة الفهم
- إدراج أمثلة عملية وتطبيقية من الحياة اليومية
- استخدام التنسيق المهني لسهولة القراءة
- توضيح الصيغ أو النظريات المهمة مع شرحها
- ربط المفاهيم ببعضها البعض

المحتوى التعليمي:
%s

الشرح التفصيلي بالعربية:

## نظرة عامة
[مقدمة موجزة عن الموضوع]

## المفاهيم الأساسية
[شرح المفاهيم الرئيسية بالتفصيل]

## أمثلة عملية
[أمثلة واضحة من الحياة اليومية]

## الروابط والعلاقات
[كيف ترتبط هذه المفاهيم مع بعضها]

## نصائح للفهم والحفظ
[استراتيجيات لفهم وتذكر المعلومات]

الشرح:
`

const exercisesPromptTemplate = `Create 5 comprehensive educational exercises based on the following course content.
%s
The exercises should cover different skill levels and question types.

IMPORTANT: You must format each exercise EXACTLY as shown below, with clear separators:

=== EXERCISE 1 ===
Question: [Write a clear, specific question here]
Answer: [Provide a detailed answer with explanations]

=== EXERCISE 2 ===
Question: [Write a clear, specific question here]
Answer: [Provide a detailed answer with explanations]

=== EXERCISE 3 ===
Question: [Write a clear, specific question here]
Answer: [Provide a detailed answer with explanations]

=== EXERCISE 4 ===
Question: [Write a clear, specific question here]
Answer: [Provide a detailed answer with explanations]

=== EXERCISE 5 ===
Question: [Write a clear, specific question here]
Answer: [Provide a detailed answer with explanations]

EXERCISE REQUIREMENTS:
- Include variety: multiple choice, short answer, problem-solving, application questions
- Progress from basic understanding to advanced application
- Provide detailed, educational answers with explanations
- Include step-by-step solutions where appropriate
- Add learning tips and common mistakes to avoid
- Make questions specific and clear, not generic

COURSE CONTENT:
%s

Generate the exercises now:
`

// buildSummaryPrompt embeds the course text and the language directive into
// the summarization prompt. All three language preferences use the same
// template; "both" requests a bilingual summary in a single call.
func buildSummaryPrompt(text string, lang domain.Language) string {
	directive := summaryDirectiveEnglish
	switch lang {
	case domain.LanguageArabic:
		directive = summaryDirectiveArabic
	case domain.LanguageBoth:
		directive = summaryDirectiveBoth
	}
	return fmt.Sprintf(summaryPromptTemplate, directive, text)
}

// buildExplainPrompt embeds the course text into the explanation prompt for
// a single language. domain.LanguageBoth is handled by the generator, which
// issues the English and Arabic prompts as two independent calls.
func buildExplainPrompt(text string, lang domain.Language) string {
	if lang == domain.LanguageArabic {
		return fmt.Sprintf(explainPromptArabicTemplate, text)
	}
	return fmt.Sprintf(explainPromptEnglishTemplate, text)
}

// buildExercisesPrompt embeds the course text and language directive into
// the exercise-generation prompt. The prompt pins the delimited output
// format the extractor parses first.
func buildExercisesPrompt(text string, lang domain.Language) string {
	directive := exercisesDirectiveEnglish
	switch lang {
	case domain.LanguageArabic:
		directive = exercisesDirectiveArabic
	case domain.LanguageBoth:
		directive = exercisesDirectiveBoth
	}
	return fmt.Sprintf(exercisesPromptTemplate, directive, text)
}
