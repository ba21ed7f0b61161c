package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Коды модуля сделок.
	DealNotFound        failure.ErrorCode = "DealNotFound"        // ID есть, но в реестре такой сделки нет
	DealLimitReached    failure.ErrorCode = "DealLimitReached"    // исчерпана квота на создание сделок
	AllocationExhausted failure.ErrorCode = "AllocationExhausted" // не удалось подобрать уникальный ID
	InvalidDealItem     failure.ErrorCode = "InvalidDealItem"
	InvalidDealPrice    failure.ErrorCode = "InvalidDealPrice"
	InvalidCurrency     failure.ErrorCode = "InvalidCurrency"
	InvalidRequisites   failure.ErrorCode = "InvalidRequisites"
	InvalidDealID       failure.ErrorCode = "InvalidDealID"
	InvalidUserID       failure.ErrorCode = "InvalidUserID"
	NoActiveSession     failure.ErrorCode = "NoActiveSession"
)
