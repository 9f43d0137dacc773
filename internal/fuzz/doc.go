// Package fuzztests houses Go fuzz harnesses for the unnamedc front end
// (source -> lexer -> driver). They smoke test robustness on arbitrary
// input and check the token stream invariants the rest of the compiler
// relies on.
//
// Назначение: прогонять произвольные байты через лексер и драйвер.
//
// Не делает: генерацию корпусов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/driver, internal/testkit.
package fuzztests
