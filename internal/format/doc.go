// Package format normalizes quill source on top of the parsed tree.
//
// Назначение: канонизация заголовков item-ов (use, function, let) без полного
// pretty-print. Текст между item-ами и тела блоков копируются как есть,
// поэтому комментарии переживают форматирование.
// Зависимости: internal/ast, internal/source.
package format
