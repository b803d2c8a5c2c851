// Package elevenlabs provides a Go client for the ElevenLabs speech API:
// text-to-speech, voice management, dubbing, history, usage, and workspace
// administration over HTTPS, plus realtime text-to-speech over WebSocket.
//
// # Overview
//
// The client is a thin mapping of methods onto the remote API surface. Every
// call funnels through one shared Transport that injects the credential,
// encodes JSON or multipart payloads, and translates HTTP status codes into
// typed *APIError values. Nothing is retried and no state is cached; a
// Client holds only immutable connection configuration and is safe to share
// across goroutines.
//
// # Quick Start
//
//	client, err := elevenlabs.NewClient(
//		elevenlabs.WithAPIKey("your-api-key"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	audio, err := client.TextToSpeech.Convert(ctx, voiceID, "Hello world.", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("hello.mp3", audio, 0o644)
//
// # Configuration
//
// Configuration is resolved once at construction with precedence
// explicit option > injected Config > environment:
//
//	client, err := elevenlabs.NewClient() // ELEVENLABS_API_KEY from env/.env
//
//	cfg := elevenlabs.NewConfig()
//	cfg.Timeout = time.Minute
//	client, err := elevenlabs.NewClientWithConfig(cfg,
//		elevenlabs.WithAPIKey("overrides-everything"))
//
// The credential has no default; constructing a client without one fails.
//
// # Streaming
//
// Streaming endpoints deliver the response through a synchronous callback,
// invoked once per chunk on the goroutine performing the call:
//
//	err := client.TextToSpeech.Stream(ctx, voiceID, text, nil, func(chunk []byte) {
//		player.Write(chunk)
//	})
//
// # Realtime
//
// DialRealtime opens a WebSocket session for low-latency synthesis. Senders
// are fire-and-forget; received audio is pushed to the OnAudio handler:
//
//	session, err := client.DialRealtime(ctx, voiceID, &elevenlabs.RealtimeOptions{
//		Handlers: elevenlabs.RealtimeHandlers{OnAudio: player.Write},
//	})
//	session.SendText("Hello ")
//	session.SendText("world.")
//	session.EndInput()
//	session.Wait()
//	session.Close()
//
// # Errors
//
// Failures surface as *APIError with a code keyed to the HTTP status
// (ErrCodeAuthentication for 401, ErrCodeRateLimit for 429, and so on) and a
// message extracted from the response body:
//
//	if elevenlabs.IsCode(err, elevenlabs.ErrCodeRateLimit) {
//		// back off upstream; the client never retries on its own
//	}
package elevenlabs
