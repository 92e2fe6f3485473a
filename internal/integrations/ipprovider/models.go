package ipprovider

// ipResponse общий для ipify, ipapi и ipdata фрагмент ответа
type ipResponse struct {
	IP string `json:"ip"`
}
