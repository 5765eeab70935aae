package remoteauth

import "github.com/goliatone/go-remoteauth/core"

type Config = core.Config

type Credentials = core.Credentials

type Account = core.Account

type Authenticator = core.Authenticator

type RemoteAuthentication = core.RemoteAuthentication

type PostClient = core.PostClient[core.Credentials, core.Account]

type ConfigProvider = core.ConfigProvider

type OptionsResolver = core.OptionsResolver

type MetricsRecorder = core.MetricsRecorder

var (
	IsInvalidCredentials = core.IsInvalidCredentials
	IsUnexpected         = core.IsUnexpected
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewRemoteAuthentication(url string, client PostClient) *RemoteAuthentication {
	return core.NewRemoteAuthentication(url, client)
}
