package bot

import "strings"

// CommandPrefix — префикс команд бота.
const CommandPrefix = "!"

// Command — разобранная команда.
type Command struct {
	Name string   // имя команды без префикса, в нижнем регистре
	Args []string // аргументы, разбитые по пробелам
	Raw  string   // всё после имени команды, как есть
}

// CommandParser разбирает текст сообщения на команду и аргументы.
type CommandParser struct{}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{}
}

// Parse возвращает (cmd, true), если текст — команда с префиксом "!".
func (p *CommandParser) Parse(content string) (Command, bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, CommandPrefix) || len(content) <= len(CommandPrefix) {
		return Command{}, false
	}

	body := content[len(CommandPrefix):]
	parts := strings.Fields(body)
	if len(parts) == 0 {
		return Command{}, false
	}

	cmd := Command{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
	if idx := strings.Index(body, parts[0]); idx >= 0 {
		cmd.Raw = strings.TrimSpace(body[idx+len(parts[0]):])
	}
	return cmd, true
}
