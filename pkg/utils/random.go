package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID создает простой уникальный ID (замена UUID для снижения зависимостей)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// ByteStream - детерминированный генератор байтов на 32-битном регистре
// (xorshift). Одинаковое зерно всегда даёт одну и ту же последовательность,
// от этого зависит побитовая воспроизводимость генерации карты.
//
// math/rand не подходит: его поток не зафиксирован между версиями Go.
type ByteStream struct {
	state uint32
}

// zeroSeedState подменяет нулевое зерно, на котором регистр вырождается.
const zeroSeedState uint32 = 0x2545F491

// NewByteStream создаёт поток для зерна.
func NewByteStream(seed uint32) *ByteStream {
	if seed == 0 {
		seed = zeroSeedState
	}
	return &ByteStream{state: seed}
}

// Next возвращает следующий байт потока.
func (s *ByteStream) Next() uint8 {
	x := s.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	return uint8(x >> 24)
}

// Intn возвращает значение в [0, n) из одного байта. n должно быть 1..256.
func (s *ByteStream) Intn(n int) int {
	return int(s.Next()) % n
}
