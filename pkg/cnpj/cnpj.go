// Package cnpj normalización y dígitos verificadores del CNPJ (módulo 11).
package cnpj

import "fmt"

// Length cantidad de dígitos de un CNPJ completo.
const Length = 14

// pesos de los dos dígitos verificadores, de izquierda a derecha.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits devuelve solo los dígitos de s ("11.222.333/0001-81" -> "11222333000181").
func Digits(s string) string {
	out := make([]byte, 0, Length)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// CheckDigits calcula los dos dígitos verificadores para los 12 primeros dígitos de s.
func CheckDigits(s string) (string, error) {
	d := Digits(s)
	if len(d) < 12 {
		return "", fmt.Errorf("cnpj: se requieren 12 dígitos, se encontraron %d", len(d))
	}
	base := []byte(d[:12])
	first := checkDigit(base, firstWeights[:])
	second := checkDigit(append(base, first), secondWeights[:])
	return string([]byte{first, second}), nil
}

func checkDigit(digits []byte, weights []int) byte {
	var sum int
	for i, c := range digits {
		sum += int(c-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

// Valid indica si s tiene 14 dígitos con verificadores correctos.
// Secuencias de un solo dígito repetido se rechazan.
func Valid(s string) bool {
	d := Digits(s)
	if len(d) != Length || repeated(d) {
		return false
	}
	dv, err := CheckDigits(d)
	return err == nil && d[12:] == dv
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}

// Format devuelve s en la forma "XX.XXX.XXX/XXXX-XX". ok es false si s no tiene 14 dígitos.
func Format(s string) (formatted string, ok bool) {
	d := Digits(s)
	if len(d) != Length {
		return "", false
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14], true
}
