// Package card реализует форматную проверку данных банковской карты.
// Платёж в системе симулируется, поэтому проверяется только форма:
// номер по алгоритму Луна, CVV из 3-4 цифр и срок действия вида MM/YY,
// который ещё не истёк. Реальной авторизации и списания нет.
package card

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid помечает все ошибки форматной проверки карты.
// Вызывающий код различает их через errors.Is.
var ErrInvalid = errors.New("invalid card")

// Validate проверяет формат номера карты, CVV и срока действия.
// Возвращает ошибку, обёрнутую вокруг ErrInvalid, с указанием поля.
func Validate(number, cvv, expiry string) error {
	if err := validateNumber(number); err != nil {
		return err
	}
	if err := validateCVV(cvv); err != nil {
		return err
	}
	return validateExpiry(expiry)
}

// Mask возвращает номер карты, скрытый до последних четырёх цифр,
// для записи в лог симулированного платежа.
func Mask(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}

func validateNumber(number string) error {
	if len(number) < 13 || len(number) > 19 {
		return fmt.Errorf("%w: number must be 13-19 digits", ErrInvalid)
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: number must contain only digits", ErrInvalid)
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	if sum%10 != 0 {
		return fmt.Errorf("%w: number failed checksum", ErrInvalid)
	}
	return nil
}

func validateCVV(cvv string) error {
	if len(cvv) < 3 || len(cvv) > 4 {
		return fmt.Errorf("%w: cvv must be 3-4 digits", ErrInvalid)
	}
	for i := 0; i < len(cvv); i++ {
		if cvv[i] < '0' || cvv[i] > '9' {
			return fmt.Errorf("%w: cvv must contain only digits", ErrInvalid)
		}
	}
	return nil
}

func validateExpiry(expiry string) error {
	var exp time.Time
	var err error
	for _, layout := range []string{"01/06", "01/2006"} {
		exp, err = time.Parse(layout, expiry)
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%w: expiry must be in MM/YY format", ErrInvalid)
	}
	// Карта действительна до конца месяца, указанного в expiry
	endOfMonth := exp.AddDate(0, 1, 0)
	if !time.Now().Before(endOfMonth) {
		return fmt.Errorf("%w: card expired", ErrInvalid)
	}
	return nil
}
