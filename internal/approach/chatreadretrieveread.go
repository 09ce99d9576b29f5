package approach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"docchat/internal/contextutil"
	"docchat/internal/llm"
	"docchat/internal/prompt"
	"docchat/internal/retrieval"
	"docchat/internal/tokens"
)

// noResponse is the sentinel the query-rewrite prompt returns when no
// searchable query could be derived from the conversation.
const noResponse = "0"

// searchSourcesFunction is the function the model may call to hand back a
// rewritten search query.
const searchSourcesFunction = "search_sources"

// answerTokenLimit is reserved for the generated answer; the rest of the
// model's context window goes to the prompt.
const answerTokenLimit = 1024

// queryRewriteTokenLimit bounds the rewrite step's output. Setting it too
// low risks malformed JSON, setting it too high may affect performance.
const queryRewriteTokenLimit = 100

const systemMessageChatConversation = `助手帮助公司员工或人力资源经理解答有关劳动法律法规的问题。请简洁回答问题。
仅使用以下来源中列出的事实进行回答。如果以下信息不足，请说明不知道。请勿使用以下来源之外的信息生成答案。如有需要，请向用户提出澄清问题。
对于表格信息，请以HTML表格的形式返回。不要使用Markdown格式。如果问题不是英文，请用问题中使用的语言回答。
在每个您在回答中引用的事实后面都要注明来源名称。用方括号表示来源，例如[info1.txt]。不要合并来源，分别列出每个来源，例如[info1.txt][info2.pdf]。
{follow_up_questions_prompt}
{injected_prompt}
`

const followUpQuestionsPrompt = `生成3个非常简洁的后续问题，用户可能会接下来提问。
用双尖括号括起后续问题。例如：
<<有哪些药物排除在外？>>
<<可以从哪些药店订购？>>
<<非处方药的限额是多少？>>
不要重复已经提过的问题。
确保最后一个问题以“>>”结尾。
`

const queryPromptTemplate = `下面是到目前为止的对话记录和用户提出的一个新问题，需要通过搜索关于劳动法律法规的知识库来回答。
根据对话和新问题生成一个搜索查询。
在搜索查询中不要包括引用的来源文件名和文档名称，如info.txt或doc.pdf。
在搜索查询中不要包括[]或<<>>内的文本。
在搜索查询中不要包含任何特殊字符，如'+'。
如果问题不是英文，请在生成搜索查询之前将问题翻译成英文。
如果无法生成搜索查询，请返回数字0。
`

var queryPromptFewShots = []llm.Message{
	{Role: llm.RoleUser, Content: "我的劳动合同包含哪些内容？"},
	{Role: llm.RoleAssistant, Content: "显示劳动合同相关内容"},
	{Role: llm.RoleUser, Content: "试用期有什么规定？"},
	{Role: llm.RoleAssistant, Content: "劳动合同试用期规定"},
}

// ChatReadRetrieveRead is the iterative chat strategy: the model first
// rewrites the conversation into a search query, the index is queried with
// it, and a second completion call answers from the retrieved sources.
type ChatReadRetrieveRead struct {
	completer Completer
	retriever Retriever
	counter   TokenCounter
}

// NewChatReadRetrieveRead creates the iterative chat approach.
func NewChatReadRetrieveRead(completer Completer, retriever Retriever, counter TokenCounter) *ChatReadRetrieveRead {
	return &ChatReadRetrieveRead{
		completer: completer,
		retriever: retriever,
		counter:   counter,
	}
}

// prepare runs the query-rewrite and retrieval steps and assembles the
// final answer-generation request, which the caller issues buffered or
// streamed.
func (a *ChatReadRetrieveRead) prepare(ctx context.Context, messages []llm.Message, overrides Overrides) (Context, llm.CompletionRequest, error) {
	logger := contextutil.LoggerFromContext(ctx)

	history := messages[:len(messages)-1]
	originalUserQuery := messages[len(messages)-1].Content
	userQueryRequest := "Generate search query for: " + originalUserQuery

	tokenLimit := tokens.Limit(a.counter.Model())

	// STEP 1: have the model rewrite the conversation into a search query.
	rewriteMessages := prompt.Build(
		a.counter,
		queryPromptTemplate,
		queryPromptFewShots,
		history,
		userQueryRequest,
		tokenLimit-len(userQueryRequest),
	)

	rewrite, err := a.completer.Complete(ctx, llm.CompletionRequest{
		Messages:    rewriteMessages,
		Temperature: 0,
		MaxTokens:   queryRewriteTokenLimit,
		Functions: []llm.FunctionDefinition{
			{
				Name:        searchSourcesFunction,
				Description: "Retrieve sources from the knowledge base search index",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"search_query": map[string]any{
							"type":        "string",
							"description": "Query string to retrieve documents from the search index eg: 'Health care plan'",
						},
					},
					"required": []string{"search_query"},
				},
			},
		},
	})
	if err != nil {
		return Context{}, llm.CompletionRequest{}, wrapExternal("query rewrite failed", err)
	}

	queryText, err := searchQuery(rewrite, originalUserQuery)
	if err != nil {
		return Context{}, llm.CompletionRequest{}, err
	}
	logger.InfoContext(ctx, "search query generated", "query", queryText)

	// STEP 2: retrieve relevant documents with the rewritten query.
	results, err := a.retriever.Retrieve(ctx, retrieval.Options{
		QueryText:        queryText,
		Filter:           overrides.filter(),
		Top:              overrides.Top,
		UseText:          overrides.hasText(),
		UseVector:        overrides.hasVector(),
		SemanticRanker:   overrides.SemanticRanker,
		SemanticCaptions: overrides.SemanticCaptions,
		MinSearchScore:   overrides.MinimumSearchScore,
		MinRerankerScore: overrides.MinimumRerankerScore,
	})
	if err != nil {
		return Context{}, llm.CompletionRequest{}, wrapExternal("retrieval failed", err)
	}

	// STEP 3: answer from the sources and the conversation. The sources
	// ride on the newest user message; the model does not handle lengthy
	// system messages well.
	followupPrompt := ""
	if overrides.SuggestFollowupQuestions {
		followupPrompt = followUpQuestionsPrompt
	}
	systemMessage := systemPrompt(overrides.PromptTemplate, followupPrompt)

	answerMessages := prompt.Build(
		a.counter,
		systemMessage,
		nil,
		history,
		originalUserQuery+"\n\nSources:\n"+results.Content(),
		tokenLimit-answerTokenLimit,
	)

	extra := Context{
		DataPoints: results.SourceLines,
		Thoughts: []ThoughtStep{
			{
				Title:       "Prompt to generate search query",
				Description: rewriteMessages,
			},
			{
				Title:       "Generated search query",
				Description: queryText,
				Props:       map[string]any{"model": a.counter.Model()},
			},
			{
				Title:       "Search results",
				Description: results.SourceLines,
			},
			{
				Title:       "Prompt to generate answer",
				Description: answerMessages,
			},
		},
	}

	return extra, llm.CompletionRequest{
		Messages:    answerMessages,
		Temperature: overrides.temperature(0.7),
		MaxTokens:   answerTokenLimit,
	}, nil
}

// Run implements Approach.
func (a *ChatReadRetrieveRead) Run(ctx context.Context, messages []llm.Message, overrides Overrides, sessionState any) (Response, error) {
	if err := validateMessages(messages); err != nil {
		return Response{}, err
	}

	extra, req, err := a.prepare(ctx, messages, overrides)
	if err != nil {
		return Response{}, err
	}

	completion, err := a.completer.Complete(ctx, req)
	if err != nil {
		return Response{}, wrapExternal("answer generation failed", err)
	}

	content := completion.Content
	if overrides.SuggestFollowupQuestions {
		visible, questions := ExtractFollowups(content)
		content = visible
		extra.FollowupQuestions = questions
	}

	return Response{
		Message:      llm.Message{Role: llm.RoleAssistant, Content: content},
		Context:      extra,
		SessionState: sessionState,
	}, nil
}

// RunStream implements Streamer. Chunks are forwarded in the order
// received; when follow-up questions were requested the stream is re-split
// so the follow-up block never reaches the caller as visible content.
func (a *ChatReadRetrieveRead) RunStream(ctx context.Context, messages []llm.Message, overrides Overrides, sessionState any, emit func(StreamChunk) error) error {
	if err := validateMessages(messages); err != nil {
		return err
	}

	extra, req, err := a.prepare(ctx, messages, overrides)
	if err != nil {
		return err
	}

	stream, err := a.completer.Stream(ctx, req)
	if err != nil {
		return wrapExternal("answer generation failed", err)
	}
	defer func() {
		_ = stream.Close()
	}()

	if err := emit(StreamChunk{
		Delta:        StreamDelta{Role: llm.RoleAssistant},
		Context:      &extra,
		SessionState: sessionState,
	}); err != nil {
		return err
	}

	var splitter Splitter
	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return wrapExternal("stream read failed", err)
		}

		content := delta.Content
		if overrides.SuggestFollowupQuestions {
			content = splitter.Feed(content)
		}
		if content == "" {
			continue
		}
		if err := emit(StreamChunk{Delta: StreamDelta{Content: content}}); err != nil {
			return err
		}
	}

	if !overrides.SuggestFollowupQuestions {
		return nil
	}
	if tail := splitter.Flush(); tail != "" {
		if err := emit(StreamChunk{Delta: StreamDelta{Content: tail}}); err != nil {
			return err
		}
	}
	if splitter.Buffered() {
		return emit(StreamChunk{
			Delta:   StreamDelta{Role: llm.RoleAssistant},
			Context: &Context{FollowupQuestions: splitter.Questions()},
		})
	}
	return nil
}

// searchQuery extracts the rewritten search query from the rewrite step's
// completion. A function call naming search_sources wins over plain text;
// the sentinel "0" (or a missing query) falls back to the user's original
// question. Malformed function-call arguments are fatal to the request.
func searchQuery(completion llm.Completion, userQuery string) (string, error) {
	if fc := completion.FunctionCall; fc != nil {
		if fc.Name == searchSourcesFunction {
			var args struct {
				SearchQuery string `json:"search_query"`
			}
			if err := json.Unmarshal([]byte(fc.Arguments), &args); err != nil {
				return "", fmt.Errorf("%w: search_sources arguments: %w", ErrUpstreamParse, err)
			}
			if args.SearchQuery != "" && args.SearchQuery != noResponse {
				return args.SearchQuery, nil
			}
		}
	} else if content := completion.Content; content != "" {
		if strings.TrimSpace(content) != noResponse {
			return content, nil
		}
	}
	return userQuery, nil
}

// systemPrompt applies the prompt override protocol: no override uses the
// default template with an empty injection slot; a ">>>" prefix splices the
// remainder into the injection slot; anything else replaces the template
// wholesale, with only the follow-up-questions slot substituted.
func systemPrompt(override, followupPrompt string) string {
	const injectionPrefix = ">>>"

	switch {
	case override == "":
		return renderSystemTemplate(systemMessageChatConversation, followupPrompt, "")
	case strings.HasPrefix(override, injectionPrefix):
		injected := strings.TrimPrefix(override, injectionPrefix) + "\n"
		return renderSystemTemplate(systemMessageChatConversation, followupPrompt, injected)
	default:
		return renderSystemTemplate(override, followupPrompt, "")
	}
}

func renderSystemTemplate(template, followupPrompt, injectedPrompt string) string {
	out := strings.ReplaceAll(template, "{follow_up_questions_prompt}", followupPrompt)
	return strings.ReplaceAll(out, "{injected_prompt}", injectedPrompt)
}
