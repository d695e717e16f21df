package slots

import "errors"

var (
	// ErrCacheMiss возвращается, когда слоты не найдены в кэше
	ErrCacheMiss = errors.New("slots.cache: cache miss")

	// ErrCache возвращается при ошибках Redis или сериализации
	ErrCache = errors.New("slots.cache: redis error")
)
