package validation

import (
	"fmt"
	"regexp"
)

// CollectionPattern определяет допустимый формат имени коллекции
// Только строчные латинские буквы, цифры и нижнее подчеркивание, первой идет буква
var CollectionPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// FieldPattern определяет допустимое имя поля JSON документа в фильтрах.
// Имя подставляется в JSON path запроса, поэтому допускается только идентификатор
var FieldPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,63}$`)

// DocumentIDPattern допускает UUID и человекочитаемые ключи (a-z, 0-9, -, _, .)
var DocumentIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,128}$`)

const (
	// MaxDocumentIDLen максимальная длина ID документа
	MaxDocumentIDLen = 128
)

// ValidateCollection проверяет имя коллекции
func ValidateCollection(name string) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	if !CollectionPattern.MatchString(name) {
		return fmt.Errorf("collection name %q must start with a letter and contain only a-z, 0-9 and _", name)
	}

	return nil
}

// ValidateDocumentID проверяет ID документа
func ValidateDocumentID(id string) error {
	if id == "" {
		return fmt.Errorf("document id cannot be empty")
	}

	if len(id) > MaxDocumentIDLen {
		return fmt.Errorf("document id must not exceed %d characters", MaxDocumentIDLen)
	}

	if !DocumentIDPattern.MatchString(id) {
		return fmt.Errorf("document id %q can only contain letters, numbers, '.', '-' and '_'", id)
	}

	return nil
}

// ValidateFieldName проверяет имя поля, используемого в фильтре запроса
func ValidateFieldName(field string) error {
	if !FieldPattern.MatchString(field) {
		return fmt.Errorf("invalid field name %q", field)
	}
	return nil
}
