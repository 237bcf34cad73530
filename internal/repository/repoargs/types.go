package repoargs

type RepositoryName string

const (
	OrderRepoName   RepositoryName = "order"
	PaymentRepoName RepositoryName = "payment"
	ProfileRepoName RepositoryName = "profile"
)
