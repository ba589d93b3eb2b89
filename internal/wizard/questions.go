// Package wizard implements the vacancy questionnaire as a pure state machine.
//
// The presentation layer dispatches actions into a Store; the Store runs them
// through Reduce and notifies subscribers. Nothing here performs I/O.
package wizard

// Question is one step of the questionnaire.
type Question struct {
	// Label names the section both on screen and in the generation prompt.
	Label string `json:"label"`
	// Hint is a short prompt shown under the label.
	Hint string `json:"hint"`
}

// Count is the number of questions in the questionnaire.
const Count = 5

// Questions is the fixed, ordered questionnaire.
var Questions = [Count]Question{
	{Label: "О компании и проекте", Hint: "Чем занимается компания, какой продукт, на каком этапе проект"},
	{Label: "Стек и технологии", Hint: "Языки, фреймворки, инфраструктура"},
	{Label: "Условия", Hint: "Формат работы, занятость, вилка, бонусы"},
	{Label: "Требования", Hint: "Опыт, навыки, обязательные знания"},
	{Label: "Чем предстоит заниматься", Hint: "Основные задачи и зона ответственности"},
}

// AnswerPlaceholder is shown in an empty answer field.
const AnswerPlaceholder = "Ваш ответ..."
