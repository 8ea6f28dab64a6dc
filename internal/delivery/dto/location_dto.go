package dto

type DivisionsResponse struct {
	Divisions []string `json:"divisions"`
}

type DistrictsResponse struct {
	Districts []string `json:"districts"`
}

type UpazilasResponse struct {
	Upazilas []string `json:"upazilas"`
}

type UserTypesResponse struct {
	UserTypes []string `json:"user_types"`
}
