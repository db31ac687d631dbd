package entities

type ApiKey struct {
	ApiKey        string `db:"api_key"`
	CallerAddress string `db:"caller_address"`
	Status        bool   `db:"status"`
}
