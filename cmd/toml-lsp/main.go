package main

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "toml-lsp"

var (
	version = "0.0.1"

	verbose = kingpin.Flag("verbose", "Increase logging verbosity, repeat for more").Short('v').Counter()
	trace   = kingpin.Flag("trace", "Trace protocol messages").Bool()

	handler   protocol.Handler
	documents = newDocumentStore()
	log       = commonlog.GetLogger(lsName)
)

func main() {
	kingpin.Version(version)
	kingpin.Parse()

	commonlog.Configure(*verbose, nil)
	if *trace {
		protocol.SetTraceValue(protocol.TraceValueMessage)
	}

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documents.open(params.TextDocument.URI, params.TextDocument.Text)
			return publish(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			if !documents.change(params.TextDocument.URI, params.ContentChanges) {
				return nil
			}
			return publish(context, params.TextDocument.URI)
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			documents.close(params.TextDocument.URI)
			context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
				URI:         params.TextDocument.URI,
				Diagnostics: []protocol.Diagnostic{},
			})
			return nil
		},
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func publish(context *glsp.Context, docURI string) error {
	text, ok := documents.get(docURI)
	if !ok {
		return nil
	}

	diags := diagnose(text)
	log.Debugf("%s: %d diagnostics", docURI, len(diags))

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diags,
	})

	return nil
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()

	log.Infof("initializing %s %s", lsName, version)

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
