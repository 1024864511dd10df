package trivia

// Question — вопрос викторины со списком принимаемых ответов.
// Первый ответ считается каноническим и показывается при истечении времени.
type Question struct {
	Text    string
	Answers []string
}

// Встроенный набор вопросов.
var questions = []Question{
	{Text: "Какая планета Солнечной системы самая большая?", Answers: []string{"юпитер"}},
	{Text: "Сколько континентов на Земле?", Answers: []string{"7", "семь"}},
	{Text: "Какой химический элемент обозначается символом O?", Answers: []string{"кислород"}},
	{Text: "В каком году человек впервые полетел в космос?", Answers: []string{"1961"}},
	{Text: "Как называется самый большой океан?", Answers: []string{"тихий", "тихий океан"}},
	{Text: "Сколько бит в одном байте?", Answers: []string{"8", "восемь"}},
	{Text: "Какая самая длинная река в мире?", Answers: []string{"нил", "амазонка"}},
	{Text: "Как зовут создателя языка Linux... то есть ядра Linux?", Answers: []string{"линус торвальдс", "торвальдс", "линус"}},
	{Text: "Какое животное самое быстрое на суше?", Answers: []string{"гепард"}},
	{Text: "Сколько цветов в радуге?", Answers: []string{"7", "семь"}},
	{Text: "Какой газ преобладает в атмосфере Земли?", Answers: []string{"азот"}},
	{Text: "Столица Австралии?", Answers: []string{"канберра"}},
	{Text: "Сколько струн у классической гитары?", Answers: []string{"6", "шесть"}},
	{Text: "Как называется ближайшая к Земле звезда?", Answers: []string{"солнце"}},
	{Text: "Какой металл жидкий при комнатной температуре?", Answers: []string{"ртуть"}},
}
